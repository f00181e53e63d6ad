package app

import (
	"context"
	"log/slog"
	"strings"

	"campushire/internal/common"
	"campushire/internal/domain/profile"
	"campushire/internal/domain/user"
	"campushire/internal/security"
)

// WebhookService ingests company profiles pushed by external automation.
type WebhookService struct {
	users     user.Repository
	companies profile.CompanyRepository
	logger    *slog.Logger
}

func NewWebhookService(users user.Repository, companies profile.CompanyRepository, logger *slog.Logger) *WebhookService {
	return &WebhookService{users: users, companies: companies, logger: logger}
}

type CompanyIngestInput struct {
	Email         string                `json:"email"`
	CompanyName   string                `json:"company_name"`
	Industry      *string               `json:"industry"`
	Website       *string               `json:"website"`
	Size          *string               `json:"size"`
	Founded       *int                  `json:"founded"`
	ContactPerson *string               `json:"contact_person"`
	Phone         *string               `json:"phone"`
	Description   *string               `json:"description"`
	Address       *profile.Address      `json:"address"`
	SocialLinks   *profile.CompanyLinks `json:"social_links"`
}

type CompanyIngestResult struct {
	Created bool                    `json:"created"`
	UserID  common.UUID             `json:"user_id"`
	Profile *profile.CompanyProfile `json:"profile"`
}

// IngestCompany creates a company account for an unseen email, or patches
// the existing profile in place. New accounts get an unguessable credential;
// access is expected to go through a later password reset.
func (s *WebhookService) IngestCompany(ctx context.Context, input CompanyIngestInput) (*CompanyIngestResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.CompanyName)
	if email == "" || name == "" {
		fields := map[string]string{}
		if email == "" {
			fields["email"] = "required"
		}
		if name == "" {
			fields["company_name"] = "required"
		}
		return nil, common.NewValidationError("email and company_name are required", fields)
	}

	account, err := s.users.FindByEmail(ctx, email)
	created := false
	switch {
	case err == nil:
		if account.Role != user.RoleCompany {
			return nil, common.NewError(common.CodeConflict, "email belongs to a non-company account", nil)
		}
	case common.Is(err, common.CodeNotFound):
		hash, hashErr := security.HashPassword(security.RandomPassword())
		if hashErr != nil {
			return nil, common.NewError(common.CodeInternal, "hash credential", hashErr)
		}
		account, err = s.users.Create(ctx, user.User{
			ID:           common.NewUUID(),
			Email:        email,
			Name:         name,
			Role:         user.RoleCompany,
			PasswordHash: hash,
		})
		if err != nil {
			return nil, err
		}
		created = true
		s.logger.Info("company account provisioned via webhook", "user_id", account.ID)
	default:
		return nil, err
	}

	current, err := s.companies.GetByUserID(ctx, account.ID)
	if err != nil {
		if !common.Is(err, common.CodeNotFound) {
			return nil, err
		}
		current = &profile.CompanyProfile{UserID: account.ID}
	}
	updated := *current
	updated.CompanyName = name
	applyCompanyInput(&updated, CompanyProfileInput{
		Industry:      input.Industry,
		Website:       input.Website,
		Size:          input.Size,
		Founded:       input.Founded,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Description:   input.Description,
		Address:       input.Address,
		SocialLinks:   input.SocialLinks,
	})
	saved, err := s.companies.Upsert(ctx, updated)
	if err != nil {
		return nil, err
	}
	return &CompanyIngestResult{Created: created, UserID: account.ID, Profile: saved}, nil
}
