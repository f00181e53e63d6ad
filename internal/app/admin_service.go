package app

import (
	"context"
	"log/slog"

	"campushire/internal/common"
	"campushire/internal/domain/opportunity"
	"campushire/internal/domain/profile"
	"campushire/internal/domain/user"
)

// AdminService covers moderation of company postings.
type AdminService struct {
	opportunities opportunity.Repository
	companies     profile.CompanyRepository
	users         user.Repository
	logger        *slog.Logger
}

func NewAdminService(opportunities opportunity.Repository, companies profile.CompanyRepository, users user.Repository, logger *slog.Logger) *AdminService {
	return &AdminService{opportunities: opportunities, companies: companies, users: users, logger: logger}
}

// ListPending returns inactive opportunities awaiting approval, annotated
// with the posting company's display name.
func (s *AdminService) ListPending(ctx context.Context) ([]opportunity.PendingOpportunity, error) {
	pending, err := s.opportunities.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return []opportunity.PendingOpportunity{}, nil
	}

	ids := make([]common.UUID, 0, len(pending))
	seen := make(map[common.UUID]bool, len(pending))
	for _, opp := range pending {
		if !seen[opp.CompanyID] {
			seen[opp.CompanyID] = true
			ids = append(ids, opp.CompanyID)
		}
	}
	names, err := s.companies.CompanyNamesByUserIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("resolve company names", "error", err)
		names = map[common.UUID]string{}
	}

	out := make([]opportunity.PendingOpportunity, 0, len(pending))
	for _, opp := range pending {
		out = append(out, opportunity.PendingOpportunity{
			Opportunity:        opp,
			CompanyDisplayName: names[opp.CompanyID],
		})
	}
	return out, nil
}

// Approve activates a pending opportunity.
func (s *AdminService) Approve(ctx context.Context, adminID, opportunityID common.UUID) (*opportunity.Opportunity, error) {
	if err := s.requireNonDemo(ctx, adminID); err != nil {
		return nil, err
	}
	opp, err := s.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opp.Active {
		return opp, nil
	}
	updated, err := s.opportunities.SetActive(ctx, opportunityID, true)
	if err != nil {
		return nil, err
	}
	s.logger.Info("opportunity approved", "opportunity_id", opportunityID, "admin_id", adminID)
	return updated, nil
}

// Reject removes an opportunity with all of its applications, answers,
// questions and the company's posted-list entry. The repository runs the
// whole cascade in one transaction, so a failure leaves nothing half-deleted.
func (s *AdminService) Reject(ctx context.Context, adminID, opportunityID common.UUID) error {
	if err := s.requireNonDemo(ctx, adminID); err != nil {
		return err
	}
	if err := s.opportunities.DeleteCascade(ctx, opportunityID); err != nil {
		return err
	}
	s.logger.Info("opportunity rejected", "opportunity_id", opportunityID, "admin_id", adminID)
	return nil
}

func (s *AdminService) requireNonDemo(ctx context.Context, adminID common.UUID) error {
	account, err := s.users.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if account.IsDemo {
		return common.NewError(common.CodeValidation, "demo accounts cannot moderate opportunities", nil)
	}
	return nil
}
