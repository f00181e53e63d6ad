package app

import (
	"context"
	"testing"

	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/opportunity"
	"campushire/internal/domain/profile"
	"campushire/internal/domain/user"
)

type applicationFixture struct {
	service       *ApplicationService
	users         *fakeUserRepo
	students      *fakeStudentRepo
	opportunities *fakeOpportunityRepo
	applications  *fakeApplicationRepo
	studentID     common.UUID
	companyID     common.UUID
	opportunityID common.UUID
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	users := newFakeUserRepo()
	students := newFakeStudentRepo()
	opportunities := newFakeOpportunityRepo()
	applications := newFakeApplicationRepo()

	studentID := users.add(user.User{Email: "student@example.com", Name: "Asha", Role: user.RoleStudent})
	companyID := users.add(user.User{Email: "hr@acme.com", Name: "Acme", Role: user.RoleCompany})

	if _, err := students.Upsert(context.Background(), profile.StudentProfile{
		UserID:  studentID,
		College: "NIT Trichy",
		Course:  "B.Tech",
		CGPA:    fptr(8.0),
		Phone:   "9999999999",
		Skills:  []string{"Go", "SQL"},
		Resume:  "resume.pdf",
	}); err != nil {
		t.Fatalf("seed student profile: %v", err)
	}

	opp, err := opportunities.Create(context.Background(), opportunity.Opportunity{
		CompanyID: companyID,
		Title:     "Backend Intern",
		Type:      opportunity.TypeInternship,
		Active:    true,
	})
	if err != nil {
		t.Fatalf("seed opportunity: %v", err)
	}

	return &applicationFixture{
		service:       NewApplicationService(applications, opportunities, students, users, testLogger()),
		users:         users,
		students:      students,
		opportunities: opportunities,
		applications:  applications,
		studentID:     studentID,
		companyID:     companyID,
		opportunityID: opp.ID,
	}
}

func TestSubmitSnapshotsProfile(t *testing.T) {
	f := newApplicationFixture(t)
	created, err := f.service.Submit(context.Background(), f.studentID, f.opportunityID, SubmitInput{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.Status != application.StatusApplied {
		t.Fatalf("status = %s, want applied", created.Status)
	}
	if created.PersonalInfo.FullName != "Asha" || created.PersonalInfo.Email != "student@example.com" {
		t.Fatalf("snapshot did not fall back to account fields: %+v", created.PersonalInfo)
	}
	if created.Education.College != "NIT Trichy" || created.Resume != "resume.pdf" {
		t.Fatalf("snapshot did not fall back to profile fields: %+v", created.Education)
	}
	if !created.Eligible {
		t.Fatal("no thresholds declared, application should be eligible")
	}
}

func TestSubmitDuplicateConflicts(t *testing.T) {
	f := newApplicationFixture(t)
	if _, err := f.service.Submit(context.Background(), f.studentID, f.opportunityID, SubmitInput{}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := f.service.Submit(context.Background(), f.studentID, f.opportunityID, SubmitInput{})
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("second submit error = %v, want conflict", err)
	}
}

func TestSubmitInactiveOpportunityHidden(t *testing.T) {
	f := newApplicationFixture(t)
	if _, err := f.opportunities.SetActive(context.Background(), f.opportunityID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, err := f.service.Submit(context.Background(), f.studentID, f.opportunityID, SubmitInput{})
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("submit to inactive error = %v, want not found", err)
	}
}

func TestSubmitDemoAccountBlocked(t *testing.T) {
	f := newApplicationFixture(t)
	demoID := f.users.add(user.User{Email: "demo@example.com", Name: "Demo", Role: user.RoleStudent, IsDemo: true})
	_, err := f.service.Submit(context.Background(), demoID, f.opportunityID, SubmitInput{})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("demo submit error = %v, want validation", err)
	}
}

func TestSubmitStoresIneligibleFlag(t *testing.T) {
	f := newApplicationFixture(t)
	strict, err := f.opportunities.Create(context.Background(), opportunity.Opportunity{
		CompanyID:   f.companyID,
		Title:       "Quant Intern",
		Active:      true,
		Eligibility: opportunity.Eligibility{MinCGPA: fptr(9.5)},
	})
	if err != nil {
		t.Fatalf("seed opportunity: %v", err)
	}
	created, err := f.service.Submit(context.Background(), f.studentID, strict.ID, SubmitInput{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.Eligible {
		t.Fatal("application should be stored as ineligible, not rejected")
	}
}

func TestSubmitDropsMalformedAnswers(t *testing.T) {
	f := newApplicationFixture(t)
	withQuestions, err := f.opportunities.Create(context.Background(), opportunity.Opportunity{
		CompanyID: f.companyID,
		Title:     "SDE Intern",
		Active:    true,
		Questions: []opportunity.Question{{Prompt: "Why us?"}, {Prompt: "Notice period?"}},
	})
	if err != nil {
		t.Fatalf("seed opportunity: %v", err)
	}
	questions, _ := f.opportunities.ListQuestions(context.Background(), withQuestions.ID)
	created, err := f.service.Submit(context.Background(), f.studentID, withQuestions.ID, SubmitInput{
		Answers: []AnswerInput{
			{QuestionID: questions[0].ID.String(), Answer: "Because of the team."},
			{QuestionID: questions[0].ID.String(), Answer: "duplicate, dropped"},
			{QuestionID: "not-a-uuid", Answer: "dropped"},
			{QuestionID: questions[1].ID.String(), Answer: "   "},
			{QuestionID: common.NewUUID().String(), Answer: "unknown question, dropped"},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(created.Answers) != 1 {
		t.Fatalf("answers kept = %d, want 1", len(created.Answers))
	}
	if created.Answers[0].Answer != "Because of the team." {
		t.Fatalf("kept answer = %q", created.Answers[0].Answer)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newApplicationFixture(t)
	created, err := f.service.Submit(context.Background(), f.studentID, f.opportunityID, SubmitInput{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	ctx := context.Background()

	// Same status is a no-op, not an error.
	if _, err := f.service.UpdateStatus(ctx, created.ID, application.StatusApplied, f.companyID); err != nil {
		t.Fatalf("same-status update: %v", err)
	}

	// Forward moves succeed in order.
	for _, next := range []application.Status{
		application.StatusUnderReview,
		application.StatusShortlisted,
		application.StatusInterview,
		application.StatusAccepted,
	} {
		if _, err := f.service.UpdateStatus(ctx, created.ID, next, f.companyID); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}

	// Final status is immutable.
	_, err = f.service.UpdateStatus(ctx, created.ID, application.StatusInterview, f.companyID)
	if !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("update after accepted error = %v, want invalid state", err)
	}
}

func TestUpdateStatusBackwardRejected(t *testing.T) {
	f := newApplicationFixture(t)
	created, err := f.service.Submit(context.Background(), f.studentID, f.opportunityID, SubmitInput{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	ctx := context.Background()
	if _, err := f.service.UpdateStatus(ctx, created.ID, application.StatusInterview, f.companyID); err != nil {
		t.Fatalf("advance: %v", err)
	}
	_, err = f.service.UpdateStatus(ctx, created.ID, application.StatusUnderReview, f.companyID)
	if !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("backward transition error = %v, want invalid state", err)
	}
	// Rejection stays open from any non-final state.
	if _, err := f.service.UpdateStatus(ctx, created.ID, application.StatusRejected, f.companyID); err != nil {
		t.Fatalf("reject from interview: %v", err)
	}
}

func TestUpdateStatusUnknownVocabulary(t *testing.T) {
	f := newApplicationFixture(t)
	created, err := f.service.Submit(context.Background(), f.studentID, f.opportunityID, SubmitInput{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, err = f.service.UpdateStatus(context.Background(), created.ID, "hired", f.companyID)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("unknown status error = %v, want validation", err)
	}
}

func TestUpdateStatusOwnershipEnforced(t *testing.T) {
	f := newApplicationFixture(t)
	created, err := f.service.Submit(context.Background(), f.studentID, f.opportunityID, SubmitInput{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	otherCompany := f.users.add(user.User{Email: "other@corp.com", Name: "Other", Role: user.RoleCompany})
	_, err = f.service.UpdateStatus(context.Background(), created.ID, application.StatusUnderReview, otherCompany)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("foreign company update error = %v, want forbidden", err)
	}
}

func TestWithdrawOnlyWhileApplied(t *testing.T) {
	f := newApplicationFixture(t)
	created, err := f.service.Submit(context.Background(), f.studentID, f.opportunityID, SubmitInput{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	ctx := context.Background()
	if _, err := f.service.UpdateStatus(ctx, created.ID, application.StatusUnderReview, f.companyID); err != nil {
		t.Fatalf("advance: %v", err)
	}
	err = f.service.Withdraw(ctx, created.ID, f.studentID)
	if !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("withdraw under review error = %v, want invalid state", err)
	}
}

func TestWithdrawDeletes(t *testing.T) {
	f := newApplicationFixture(t)
	created, err := f.service.Submit(context.Background(), f.studentID, f.opportunityID, SubmitInput{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	ctx := context.Background()
	if err := f.service.Withdraw(ctx, created.ID, f.studentID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if _, err := f.applications.GetByID(ctx, created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("application still present after withdraw: %v", err)
	}
	// Withdrawing frees the slot for a fresh submission.
	if _, err := f.service.Submit(ctx, f.studentID, f.opportunityID, SubmitInput{}); err != nil {
		t.Fatalf("resubmit after withdraw: %v", err)
	}
}
