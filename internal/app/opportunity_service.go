package app

import (
	"context"
	"log/slog"
	"strings"

	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/opportunity"
	"campushire/internal/domain/profile"
	"campushire/internal/domain/user"
)

type OpportunityService struct {
	repo         opportunity.Repository
	companies    profile.CompanyRepository
	users        user.Repository
	applications application.Repository
	students     profile.StudentRepository
	logger       *slog.Logger
}

func NewOpportunityService(repo opportunity.Repository, companies profile.CompanyRepository, users user.Repository, applications application.Repository, students profile.StudentRepository, logger *slog.Logger) *OpportunityService {
	return &OpportunityService{repo: repo, companies: companies, users: users, applications: applications, students: students, logger: logger}
}

func (s *OpportunityService) Create(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	account, err := s.users.GetByID(ctx, o.CompanyID)
	if err != nil {
		return nil, err
	}
	if account.IsDemo {
		return nil, common.NewError(common.CodeValidation, "demo accounts cannot post opportunities", nil)
	}
	if err := validateOpportunity(&o); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}
	if err := s.companies.AppendPosted(ctx, o.CompanyID, created.ID); err != nil {
		s.logger.Warn("failed to append posted opportunity", "opportunity_id", created.ID, "error", err)
	}
	s.logger.Info("opportunity created", "opportunity_id", created.ID, "company_id", o.CompanyID)
	return created, nil
}

func (s *OpportunityService) Update(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	current, err := s.repo.GetByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if current.CompanyID != o.CompanyID {
		return nil, common.NewError(common.CodeForbidden, "opportunity belongs to another company", nil)
	}
	account, err := s.users.GetByID(ctx, o.CompanyID)
	if err != nil {
		return nil, err
	}
	if account.IsDemo {
		return nil, common.NewError(common.CodeValidation, "demo accounts cannot update opportunities", nil)
	}
	if err := validateOpportunity(&o); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, o)
}

func (s *OpportunityService) SetActive(ctx context.Context, companyID, opportunityID common.UUID, active bool) (*opportunity.Opportunity, error) {
	current, err := s.repo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if current.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "opportunity belongs to another company", nil)
	}
	if active {
		companyProfile, err := s.companies.GetByUserID(ctx, companyID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				return nil, common.NewError(common.CodeValidation, "company profile is required", nil)
			}
			return nil, err
		}
		if !IsCompanyProfileComplete(*companyProfile) {
			return nil, common.NewError(common.CodeValidation, "company profile is incomplete", nil)
		}
	}
	return s.repo.SetActive(ctx, opportunityID, active)
}

// Get serves the student-facing detail view; inactive postings stay hidden.
func (s *OpportunityService) Get(ctx context.Context, id common.UUID) (*opportunity.Opportunity, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.Active {
		return nil, common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	questions, err := s.repo.ListQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Questions = questions
	return item, nil
}

// OpportunityDetail is the student-facing detail view, annotated with the
// viewer's relationship to the posting.
type OpportunityDetail struct {
	opportunity.Opportunity
	HasApplied bool `json:"has_applied"`
	IsSaved    bool `json:"is_saved"`
}

// GetForViewer wraps Get with per-viewer annotations. An anonymous or
// non-student viewer gets both flags false.
func (s *OpportunityService) GetForViewer(ctx context.Context, id, viewerID common.UUID, isStudent bool) (*OpportunityDetail, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &OpportunityDetail{Opportunity: *item}
	if !isStudent || viewerID.IsZero() {
		return detail, nil
	}
	if _, err := s.applications.FindByOpportunityAndStudent(ctx, id, viewerID); err == nil {
		detail.HasApplied = true
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	studentProfile, err := s.students.GetByUserID(ctx, viewerID)
	if err == nil {
		detail.IsSaved = studentProfile.HasSaved(id)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	return detail, nil
}

func (s *OpportunityService) GetByCompany(ctx context.Context, companyID, opportunityID common.UUID) (*opportunity.Opportunity, error) {
	item, err := s.repo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if item.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "opportunity belongs to another company", nil)
	}
	questions, err := s.repo.ListQuestions(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	item.Questions = questions
	return item, nil
}

func (s *OpportunityService) ListActive(ctx context.Context, filter opportunity.ListFilter, limit, offset int) ([]opportunity.Opportunity, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListActive(ctx, filter, limit, offset)
}

func (s *OpportunityService) ListByCompany(ctx context.Context, companyID common.UUID) ([]opportunity.Opportunity, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

// Delete removes a company's own posting together with its applications and
// the posted-list back-reference.
func (s *OpportunityService) Delete(ctx context.Context, companyID, opportunityID common.UUID) error {
	account, err := s.users.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if account.IsDemo {
		return common.NewError(common.CodeValidation, "demo accounts cannot delete opportunities", nil)
	}
	current, err := s.repo.GetByID(ctx, opportunityID)
	if err != nil {
		return err
	}
	if current.CompanyID != companyID {
		return common.NewError(common.CodeForbidden, "opportunity belongs to another company", nil)
	}
	return s.repo.DeleteCascade(ctx, opportunityID)
}

func validateOpportunity(o *opportunity.Opportunity) error {
	fields := map[string]string{}
	o.Title = strings.TrimSpace(o.Title)
	if o.Title == "" {
		fields["title"] = "title is required"
	}
	if normalized, err := normalizeType(o.Type); err != nil {
		fields["type"] = "type must be internship, full-time, part-time, or remote"
	} else {
		o.Type = normalized
	}
	if normalized, err := normalizeExperience(o.ExperienceLevel); err != nil {
		fields["experience_level"] = "experience level must be fresher, 0-2, 2-5, or 5+"
	} else {
		o.ExperienceLevel = normalized
	}
	if o.Description == "" {
		fields["description"] = "description is required"
	}
	if o.Vacancies <= 0 {
		o.Vacancies = 1
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid opportunity", fields)
	}
	return nil
}

func normalizeType(t opportunity.Type) (opportunity.Type, error) {
	normalized := opportunity.Type(strings.ToLower(strings.TrimSpace(string(t))))
	switch normalized {
	case opportunity.TypeInternship, opportunity.TypeFullTime, opportunity.TypePartTime, opportunity.TypeRemote:
		return normalized, nil
	case "":
		return opportunity.TypeFullTime, nil
	default:
		return "", common.NewError(common.CodeValidation, "invalid opportunity type", nil)
	}
}

func normalizeExperience(level opportunity.ExperienceLevel) (opportunity.ExperienceLevel, error) {
	normalized := opportunity.ExperienceLevel(strings.ToLower(strings.TrimSpace(string(level))))
	switch normalized {
	case opportunity.ExperienceFresher, opportunity.ExperienceZeroToTwo, opportunity.ExperienceTwoToFive, opportunity.ExperienceFivePlus:
		return normalized, nil
	case "":
		return opportunity.ExperienceFresher, nil
	default:
		return "", common.NewError(common.CodeValidation, "invalid experience level", nil)
	}
}
