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

type ApplicationService struct {
	repo          application.Repository
	opportunities opportunity.Repository
	students      profile.StudentRepository
	users         user.Repository
	logger        *slog.Logger
}

func NewApplicationService(repo application.Repository, opportunities opportunity.Repository, students profile.StudentRepository, users user.Repository, logger *slog.Logger) *ApplicationService {
	return &ApplicationService{repo: repo, opportunities: opportunities, students: students, users: users, logger: logger}
}

type AnswerInput struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type SubmitInput struct {
	FullName        string        `json:"full_name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	LinkedIn        string        `json:"linkedin"`
	College         string        `json:"college"`
	Degree          string        `json:"degree"`
	EducationStatus string        `json:"education_status"`
	GraduationYear  *int          `json:"graduation_year"`
	CGPA            *float64      `json:"cgpa"`
	Skills          []string      `json:"skills"`
	Projects        string        `json:"projects"`
	Extracurricular string        `json:"extracurricular"`
	Resume          string        `json:"resume"`
	CoverLetterFile string        `json:"cover_letter_file"`
	CoverLetterText string        `json:"cover_letter_text"`
	Answers         []AnswerInput `json:"answers"`
}

// Submit creates the one application a student may hold against an
// opportunity. Eligibility is evaluated here, stored, and never recomputed;
// an ineligible student may still apply and the flag is informational for the
// reviewing company.
func (s *ApplicationService) Submit(ctx context.Context, studentID, opportunityID common.UUID, input SubmitInput) (*application.Application, error) {
	account, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if account.IsDemo {
		return nil, common.NewError(common.CodeValidation, "demo accounts cannot submit applications", nil)
	}
	studentProfile, err := s.students.GetByUserID(ctx, studentID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "student profile is required", nil)
		}
		return nil, err
	}
	opp, err := s.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if !opp.Active {
		return nil, common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	if _, err := s.repo.FindByOpportunityAndStudent(ctx, opportunityID, studentID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied to this opportunity", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	resume := strings.TrimSpace(input.Resume)
	if resume == "" {
		resume = studentProfile.Resume
	}
	if resume == "" {
		return nil, common.NewValidationError("resume is required", map[string]string{"resume": "upload a resume or attach one to your profile"})
	}

	app := application.Application{
		OpportunityID: opportunityID,
		StudentID:     studentID,
		Status:        application.StatusApplied,
		PersonalInfo: application.PersonalInfo{
			FullName: fallback(input.FullName, account.Name),
			Email:    fallback(input.Email, account.Email),
			Phone:    fallback(input.Phone, studentProfile.Phone),
			LinkedIn: fallback(input.LinkedIn, studentProfile.SocialLinks.LinkedIn),
		},
		Education: application.Education{
			College:        fallback(input.College, studentProfile.College),
			Degree:         fallback(input.Degree, studentProfile.Course),
			Status:         input.EducationStatus,
			GraduationYear: firstInt(input.GraduationYear, studentProfile.GraduationYear),
			CGPA:           firstFloat(input.CGPA, studentProfile.CGPA),
		},
		Skills:          normalizeSkills(input.Skills, studentProfile.Skills),
		Projects:        input.Projects,
		Extracurricular: input.Extracurricular,
		Resume:          resume,
		CoverLetterFile: input.CoverLetterFile,
		CoverLetterText: input.CoverLetterText,
		Eligible:        EvaluateEligibility(opp.Eligibility, *studentProfile),
		Answers:         s.validAnswers(ctx, opportunityID, input.Answers),
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		if common.Is(err, common.CodeConflict) {
			return nil, common.NewError(common.CodeConflict, "already applied to this opportunity", err)
		}
		return nil, err
	}
	s.logger.Info("application submitted", "application_id", created.ID, "opportunity_id", opportunityID, "eligible", created.Eligible)
	return created, nil
}

// validAnswers keeps answers that reference a question belonging to the
// target opportunity and carry text. Malformed answers are dropped, not
// fatal; a duplicate answer for the same question keeps the first.
func (s *ApplicationService) validAnswers(ctx context.Context, opportunityID common.UUID, inputs []AnswerInput) []application.Answer {
	if len(inputs) == 0 {
		return nil
	}
	questions, err := s.opportunities.ListQuestions(ctx, opportunityID)
	if err != nil {
		s.logger.Warn("failed to load opportunity questions", "opportunity_id", opportunityID, "error", err)
		return nil
	}
	known := make(map[common.UUID]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}
	answered := make(map[common.UUID]bool, len(inputs))
	var answers []application.Answer
	for _, input := range inputs {
		questionID, err := common.ParseUUID(strings.TrimSpace(input.QuestionID))
		if err != nil {
			continue
		}
		text := strings.TrimSpace(input.Answer)
		if text == "" || !known[questionID] || answered[questionID] {
			continue
		}
		answered[questionID] = true
		answers = append(answers, application.Answer{QuestionID: questionID, Answer: text})
	}
	return answers
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID common.UUID, status application.Status, companyID common.UUID) (*application.Application, error) {
	account, err := s.users.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if account.IsDemo {
		return nil, common.NewError(common.CodeValidation, "demo accounts cannot update application status", nil)
	}
	nextStatus := application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !isKnownStatus(nextStatus) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be applied, under_review, shortlisted, interview, rejected, or accepted"})
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	opp, err := s.opportunities.GetByID(ctx, app.OpportunityID)
	if err != nil {
		return nil, err
	}
	if opp.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another company", nil)
	}
	if nextStatus == app.Status {
		return app, nil
	}
	if isFinalStatus(app.Status) {
		return nil, common.NewError(common.CodeInvalidState, "application status is final", nil)
	}
	if !isForwardTransition(app.Status, nextStatus) {
		return nil, common.NewError(common.CodeInvalidState, "invalid status transition", nil)
	}
	updated, err := s.repo.UpdateStatus(ctx, applicationID, nextStatus)
	if err != nil {
		return nil, err
	}
	s.logger.Info("application status changed", "application_id", applicationID, "status", nextStatus)
	return updated, nil
}

// Withdraw deletes a student's own application while it is still in the
// pre-review state. Anything past applied belongs to the company's pipeline.
func (s *ApplicationService) Withdraw(ctx context.Context, applicationID, studentID common.UUID) error {
	account, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if account.IsDemo {
		return common.NewError(common.CodeValidation, "demo accounts cannot withdraw applications", nil)
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.StudentID != studentID {
		return common.NewError(common.CodeForbidden, "application belongs to another student", nil)
	}
	if app.Status != application.StatusApplied {
		return common.NewError(common.CodeInvalidState, "application is already under review", nil)
	}
	return s.repo.Delete(ctx, applicationID)
}

func (s *ApplicationService) ListForStudent(ctx context.Context, studentID common.UUID, filter application.ListFilter) ([]application.Application, error) {
	return s.repo.ListByStudent(ctx, studentID, filter)
}

func (s *ApplicationService) ListForCompany(ctx context.Context, companyID common.UUID, filter application.ListFilter) ([]application.Application, error) {
	return s.repo.ListByCompany(ctx, companyID, filter)
}

// Get resolves one application with answers, visible to the applicant and to
// the opportunity's owner.
func (s *ApplicationService) Get(ctx context.Context, applicationID, actorID common.UUID) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.StudentID != actorID {
		opp, err := s.opportunities.GetByID(ctx, app.OpportunityID)
		if err != nil {
			return nil, err
		}
		if opp.CompanyID != actorID {
			return nil, common.NewError(common.CodeForbidden, "not allowed to view this application", nil)
		}
	}
	answers, err := s.repo.ListAnswers(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	app.Answers = answers
	return app, nil
}

func isForwardTransition(from, to application.Status) bool {
	if to == application.StatusRejected {
		return !isFinalStatus(from)
	}
	fromRank, toRank := statusRank(from), statusRank(to)
	if fromRank < 0 || toRank < 0 {
		return false
	}
	return toRank > fromRank
}

func statusRank(status application.Status) int {
	switch status {
	case application.StatusApplied:
		return 0
	case application.StatusUnderReview:
		return 1
	case application.StatusShortlisted:
		return 2
	case application.StatusInterview:
		return 3
	case application.StatusAccepted, application.StatusRejected:
		return 4
	default:
		return -1
	}
}

func isFinalStatus(status application.Status) bool {
	return status == application.StatusAccepted || status == application.StatusRejected
}

func isKnownStatus(status application.Status) bool {
	switch status {
	case application.StatusApplied, application.StatusUnderReview, application.StatusShortlisted,
		application.StatusInterview, application.StatusRejected, application.StatusAccepted:
		return true
	default:
		return false
	}
}

func fallback(value, alt string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return alt
}

func firstInt(value, alt *int) *int {
	if value != nil {
		return value
	}
	return alt
}

func firstFloat(value, alt *float64) *float64 {
	if value != nil {
		return value
	}
	return alt
}

func normalizeSkills(values, alt []string) []string {
	source := values
	if len(source) == 0 {
		source = alt
	}
	seen := make(map[string]bool, len(source))
	var skills []string
	for _, value := range source {
		skill := strings.TrimSpace(value)
		if skill == "" || seen[strings.ToLower(skill)] {
			continue
		}
		seen[strings.ToLower(skill)] = true
		skills = append(skills, skill)
	}
	return skills
}
