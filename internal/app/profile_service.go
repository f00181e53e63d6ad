package app

import (
	"context"
	"log/slog"
	"strings"

	"campushire/internal/common"
	"campushire/internal/domain/profile"
	"campushire/internal/domain/user"
)

type ProfileService struct {
	students  profile.StudentRepository
	companies profile.CompanyRepository
	users     user.Repository
	logger    *slog.Logger
}

func NewProfileService(students profile.StudentRepository, companies profile.CompanyRepository, users user.Repository, logger *slog.Logger) *ProfileService {
	return &ProfileService{students: students, companies: companies, users: users, logger: logger}
}

// GetStudent finds or lazily creates the student's profile; the upsert is
// keyed on the owning user id so repeated calls are idempotent.
func (s *ProfileService) GetStudent(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	existing, err := s.students.GetByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.students.Upsert(ctx, profile.StudentProfile{UserID: userID})
}

type StudentProfileInput struct {
	College        string   `json:"college"`
	Course         string   `json:"course"`
	Branch         string   `json:"branch"`
	GraduationYear *int     `json:"graduation_year"`
	TenthPercent   *float64 `json:"tenth_percent"`
	TwelfthPercent *float64 `json:"twelfth_percent"`
	CGPA           *float64 `json:"cgpa"`
	Phone          string   `json:"phone"`
	Skills         []string `json:"skills"`
	LinkedIn       string   `json:"linkedin"`
	GitHub         string   `json:"github"`
	Portfolio      string   `json:"portfolio"`
}

func (s *ProfileService) UpdateStudent(ctx context.Context, userID common.UUID, input StudentProfileInput) (*profile.StudentProfile, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.IsDemo {
		return nil, common.NewError(common.CodeValidation, "demo accounts cannot update profiles", nil)
	}
	current, err := s.GetStudent(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated := *current
	updated.College = strings.TrimSpace(input.College)
	updated.Course = strings.TrimSpace(input.Course)
	updated.Branch = strings.TrimSpace(input.Branch)
	updated.GraduationYear = input.GraduationYear
	updated.TenthPercent = input.TenthPercent
	updated.TwelfthPercent = input.TwelfthPercent
	updated.CGPA = input.CGPA
	updated.Phone = strings.TrimSpace(input.Phone)
	updated.Skills = normalizeSkills(input.Skills, nil)
	updated.SocialLinks = profile.SocialLinks{
		LinkedIn:  strings.TrimSpace(input.LinkedIn),
		GitHub:    strings.TrimSpace(input.GitHub),
		Portfolio: strings.TrimSpace(input.Portfolio),
	}
	updated.Completion = StudentProfileCompletion(updated)
	return s.students.Upsert(ctx, updated)
}

// SetResume stores the uploaded filename and recomputes completion.
func (s *ProfileService) SetResume(ctx context.Context, userID common.UUID, filename string) (*profile.StudentProfile, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.IsDemo {
		return nil, common.NewError(common.CodeValidation, "demo accounts cannot upload resumes", nil)
	}
	current, err := s.GetStudent(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated := *current
	updated.Resume = filename
	updated.Completion = StudentProfileCompletion(updated)
	if err := s.students.SetResume(ctx, userID, filename, updated.Completion); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteResume clears the stored reference and returns the previous filename
// so the caller can remove the artifact from storage.
func (s *ProfileService) DeleteResume(ctx context.Context, userID common.UUID) (string, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if account.IsDemo {
		return "", common.NewError(common.CodeValidation, "demo accounts cannot delete resumes", nil)
	}
	current, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if current.Resume == "" {
		return "", common.NewError(common.CodeNotFound, "no resume to delete", nil)
	}
	previous := current.Resume
	updated := *current
	updated.Resume = ""
	updated.Completion = StudentProfileCompletion(updated)
	if err := s.students.SetResume(ctx, userID, "", updated.Completion); err != nil {
		return "", err
	}
	return previous, nil
}

// ToggleSaved flips an opportunity in or out of the student's saved set and
// reports the new state.
func (s *ProfileService) ToggleSaved(ctx context.Context, userID, opportunityID common.UUID) (bool, error) {
	current, err := s.GetStudent(ctx, userID)
	if err != nil {
		return false, err
	}
	saved := current.SavedOpportunities
	if current.HasSaved(opportunityID) {
		kept := make([]common.UUID, 0, len(saved))
		for _, id := range saved {
			if id != opportunityID {
				kept = append(kept, id)
			}
		}
		return false, s.students.SetSavedOpportunities(ctx, userID, kept)
	}
	return true, s.students.SetSavedOpportunities(ctx, userID, append(saved, opportunityID))
}

// GetCompany finds or lazily creates the company's profile, seeding the
// display name from the account.
func (s *ProfileService) GetCompany(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	existing, err := s.companies.GetByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.companies.Upsert(ctx, profile.CompanyProfile{UserID: userID, CompanyName: account.Name})
}

// CompanyProfileInput is a partial update: nil fields leave the stored value
// untouched.
type CompanyProfileInput struct {
	CompanyName   *string               `json:"company_name"`
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

func (s *ProfileService) UpdateCompany(ctx context.Context, userID common.UUID, input CompanyProfileInput) (*profile.CompanyProfile, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.IsDemo {
		return nil, common.NewError(common.CodeValidation, "demo accounts cannot update profiles", nil)
	}
	current, err := s.GetCompany(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated := *current
	applyCompanyInput(&updated, input)
	return s.companies.Upsert(ctx, updated)
}

func (s *ProfileService) SetLogo(ctx context.Context, userID common.UUID, filename string) (*profile.CompanyProfile, error) {
	current, err := s.GetCompany(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated := *current
	updated.Logo = filename
	return s.companies.Upsert(ctx, updated)
}

func applyCompanyInput(p *profile.CompanyProfile, input CompanyProfileInput) {
	if input.CompanyName != nil && strings.TrimSpace(*input.CompanyName) != "" {
		p.CompanyName = strings.TrimSpace(*input.CompanyName)
	}
	if input.Industry != nil {
		p.Industry = strings.TrimSpace(*input.Industry)
	}
	if input.Website != nil {
		p.Website = strings.TrimSpace(*input.Website)
	}
	if input.Size != nil {
		p.Size = strings.TrimSpace(*input.Size)
	}
	if input.Founded != nil {
		p.Founded = input.Founded
	}
	if input.ContactPerson != nil {
		p.ContactPerson = strings.TrimSpace(*input.ContactPerson)
	}
	if input.Phone != nil {
		p.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Address != nil {
		p.Address = *input.Address
	}
	if input.SocialLinks != nil {
		p.SocialLinks = *input.SocialLinks
	}
}
