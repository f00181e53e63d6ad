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

type opportunityFixture struct {
	service      *OpportunityService
	users        *fakeUserRepo
	companies    *fakeCompanyRepo
	repo         *fakeOpportunityRepo
	students     *fakeStudentRepo
	applications *fakeApplicationRepo
	companyID    common.UUID
}

func newOpportunityFixture(t *testing.T) *opportunityFixture {
	t.Helper()
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo()
	repo := newFakeOpportunityRepo()
	repo.companies = companies
	students := newFakeStudentRepo()
	applications := newFakeApplicationRepo()
	companyID := users.add(user.User{Email: "hr@acme.com", Name: "Acme HR", Role: user.RoleCompany})
	if _, err := companies.Upsert(context.Background(), profile.CompanyProfile{
		UserID:        companyID,
		CompanyName:   "Acme Corp",
		Industry:      "Manufacturing",
		ContactPerson: "Ravi",
		Phone:         "8888888888",
		Description:   "We make everything.",
	}); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return &opportunityFixture{
		service:      NewOpportunityService(repo, companies, users, applications, students, testLogger()),
		users:        users,
		companies:    companies,
		repo:         repo,
		students:     students,
		applications: applications,
		companyID:    companyID,
	}
}

func TestCreateOpportunityDefaultsAndTracking(t *testing.T) {
	f := newOpportunityFixture(t)
	created, err := f.service.Create(context.Background(), opportunity.Opportunity{
		CompanyID:   f.companyID,
		Title:       "  Backend Intern  ",
		Description: "Build services.",
		Type:        "INTERNSHIP",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Title != "Backend Intern" {
		t.Fatalf("title = %q, want trimmed", created.Title)
	}
	if created.Type != opportunity.TypeInternship {
		t.Fatalf("type = %s, want normalized internship", created.Type)
	}
	if created.ExperienceLevel != opportunity.ExperienceFresher {
		t.Fatalf("experience = %s, want fresher default", created.ExperienceLevel)
	}
	if created.Vacancies != 1 {
		t.Fatalf("vacancies = %d, want 1 default", created.Vacancies)
	}
	if created.Active {
		t.Fatal("new postings start inactive pending approval")
	}
	company, err := f.companies.GetByUserID(context.Background(), f.companyID)
	if err != nil {
		t.Fatalf("load company: %v", err)
	}
	if len(company.PostedOpportunities) != 1 || company.PostedOpportunities[0] != created.ID {
		t.Fatalf("posted list = %v, want [%s]", company.PostedOpportunities, created.ID)
	}
}

func TestCreateOpportunityValidation(t *testing.T) {
	f := newOpportunityFixture(t)
	_, err := f.service.Create(context.Background(), opportunity.Opportunity{
		CompanyID: f.companyID,
		Type:      "gig",
	})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestUpdateOpportunityOwnership(t *testing.T) {
	f := newOpportunityFixture(t)
	created, err := f.service.Create(context.Background(), opportunity.Opportunity{
		CompanyID:   f.companyID,
		Title:       "Backend Intern",
		Description: "Build services.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other := f.users.add(user.User{Email: "other@corp.com", Name: "Other", Role: user.RoleCompany})
	modified := *created
	modified.CompanyID = other
	if _, err := f.service.Update(context.Background(), modified); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("foreign update error = %v, want forbidden", err)
	}
}

func TestSetActiveRequiresCompleteProfile(t *testing.T) {
	f := newOpportunityFixture(t)
	bare := f.users.add(user.User{Email: "new@corp.com", Name: "NewCo", Role: user.RoleCompany})
	created, err := f.service.Create(context.Background(), opportunity.Opportunity{
		CompanyID:   bare,
		Title:       "Backend Intern",
		Description: "Build services.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = f.service.SetActive(context.Background(), bare, created.ID, true)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("activate without profile error = %v, want validation", err)
	}
}

func TestGetHidesInactive(t *testing.T) {
	f := newOpportunityFixture(t)
	created, err := f.service.Create(context.Background(), opportunity.Opportunity{
		CompanyID:   f.companyID,
		Title:       "Backend Intern",
		Description: "Build services.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.service.Get(context.Background(), created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("public get of inactive error = %v, want not found", err)
	}
	// The owner still sees it.
	if _, err := f.service.GetByCompany(context.Background(), f.companyID, created.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
}

func TestGetForViewerAnnotates(t *testing.T) {
	f := newOpportunityFixture(t)
	ctx := context.Background()
	created, err := f.service.Create(ctx, opportunity.Opportunity{
		CompanyID:   f.companyID,
		Title:       "Backend Intern",
		Description: "Build services.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.repo.SetActive(ctx, created.ID, true); err != nil {
		t.Fatalf("activate: %v", err)
	}
	studentID := f.users.add(user.User{Email: "student@example.com", Name: "Asha", Role: user.RoleStudent})
	if _, err := f.students.Upsert(ctx, profile.StudentProfile{
		UserID:             studentID,
		SavedOpportunities: []common.UUID{created.ID},
	}); err != nil {
		t.Fatalf("seed student: %v", err)
	}
	if _, err := f.applications.Create(ctx, application.Application{
		OpportunityID: created.ID,
		StudentID:     studentID,
		Status:        application.StatusApplied,
	}); err != nil {
		t.Fatalf("seed application: %v", err)
	}

	detail, err := f.service.GetForViewer(ctx, created.ID, studentID, true)
	if err != nil {
		t.Fatalf("get for viewer: %v", err)
	}
	if !detail.HasApplied || !detail.IsSaved {
		t.Fatalf("annotations = applied:%v saved:%v, want both true", detail.HasApplied, detail.IsSaved)
	}

	anonymous, err := f.service.GetForViewer(ctx, created.ID, "", false)
	if err != nil {
		t.Fatalf("anonymous get: %v", err)
	}
	if anonymous.HasApplied || anonymous.IsSaved {
		t.Fatal("anonymous viewer must get unannotated detail")
	}
}

func TestDeleteOpportunityDetachesPostedList(t *testing.T) {
	f := newOpportunityFixture(t)
	created, err := f.service.Create(context.Background(), opportunity.Opportunity{
		CompanyID:   f.companyID,
		Title:       "Backend Intern",
		Description: "Build services.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ctx := context.Background()
	if err := f.service.Delete(ctx, f.companyID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.repo.GetByID(ctx, created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("opportunity still present: %v", err)
	}
	company, err := f.companies.GetByUserID(ctx, f.companyID)
	if err != nil {
		t.Fatalf("load company: %v", err)
	}
	if len(company.PostedOpportunities) != 0 {
		t.Fatalf("posted list = %v, want empty", company.PostedOpportunities)
	}
}
