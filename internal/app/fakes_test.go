package app

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/opportunity"
	"campushire/internal/domain/profile"
	"campushire/internal/domain/user"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[common.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[common.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	}
	if account.ID.IsZero() {
		account.ID = common.NewUUID()
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	stored := account
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = &stored
	return &stored, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role user.Role) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, u := range r.byID {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) add(u user.User) common.UUID {
	if u.ID.IsZero() {
		u.ID = common.NewUUID()
	}
	stored := u
	r.mu.Lock()
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = &stored
	r.mu.Unlock()
	return stored.ID
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	profiles map[common.UUID]*profile.StudentProfile
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{profiles: make(map[common.UUID]*profile.StudentProfile)}
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, common.NewError(common.CodeNotFound, "student profile not found", nil)
}

func (r *fakeStudentRepo) Upsert(ctx context.Context, p profile.StudentProfile) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.UpdatedAt = time.Now()
	if existing, ok := r.profiles[p.UserID]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		p.CreatedAt = p.UpdatedAt
	}
	stored := p
	r.profiles[p.UserID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeStudentRepo) SetResume(ctx context.Context, userID common.UUID, resume string, completion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return common.NewError(common.CodeNotFound, "student profile not found", nil)
	}
	p.Resume = resume
	p.Completion = completion
	return nil
}

func (r *fakeStudentRepo) SetSavedOpportunities(ctx context.Context, userID common.UUID, saved []common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return common.NewError(common.CodeNotFound, "student profile not found", nil)
	}
	p.SavedOpportunities = saved
	return nil
}

type fakeCompanyRepo struct {
	mu       sync.Mutex
	profiles map[common.UUID]*profile.CompanyProfile
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{profiles: make(map[common.UUID]*profile.CompanyProfile)}
}

func (r *fakeCompanyRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, common.NewError(common.CodeNotFound, "company profile not found", nil)
}

func (r *fakeCompanyRepo) Upsert(ctx context.Context, p profile.CompanyProfile) (*profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := p
	r.profiles[p.UserID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeCompanyRepo) AppendPosted(ctx context.Context, userID, opportunityID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return common.NewError(common.CodeNotFound, "company profile not found", nil)
	}
	for _, id := range p.PostedOpportunities {
		if id == opportunityID {
			return nil
		}
	}
	p.PostedOpportunities = append(p.PostedOpportunities, opportunityID)
	return nil
}

func (r *fakeCompanyRepo) detachPosted(userID, opportunityID common.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return
	}
	kept := p.PostedOpportunities[:0]
	for _, id := range p.PostedOpportunities {
		if id != opportunityID {
			kept = append(kept, id)
		}
	}
	p.PostedOpportunities = kept
}

func (r *fakeCompanyRepo) CompanyNamesByUserIDs(ctx context.Context, userIDs []common.UUID) (map[common.UUID]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make(map[common.UUID]string, len(userIDs))
	for _, id := range userIDs {
		if p, ok := r.profiles[id]; ok {
			names[id] = p.CompanyName
		}
	}
	return names, nil
}

type fakeOpportunityRepo struct {
	mu            sync.Mutex
	opportunities map[common.UUID]*opportunity.Opportunity
	questions     map[common.UUID][]opportunity.Question
	companies     *fakeCompanyRepo
}

func newFakeOpportunityRepo() *fakeOpportunityRepo {
	return &fakeOpportunityRepo{
		opportunities: make(map[common.UUID]*opportunity.Opportunity),
		questions:     make(map[common.UUID][]opportunity.Question),
	}
}

func (r *fakeOpportunityRepo) Create(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = common.NewUUID()
	}
	for i := range o.Questions {
		if o.Questions[i].ID.IsZero() {
			o.Questions[i].ID = common.NewUUID()
		}
	}
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	stored := o
	r.opportunities[o.ID] = &stored
	r.questions[o.ID] = append([]opportunity.Question(nil), o.Questions...)
	copied := stored
	return &copied, nil
}

func (r *fakeOpportunityRepo) Update(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.opportunities[o.ID]
	if !ok || existing.CompanyID != o.CompanyID {
		return nil, common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	o.Active = existing.Active
	o.CreatedAt = existing.CreatedAt
	o.UpdatedAt = time.Now()
	stored := o
	r.opportunities[o.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeOpportunityRepo) SetActive(ctx context.Context, id common.UUID, active bool) (*opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.opportunities[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	o.Active = active
	copied := *o
	return &copied, nil
}

func (r *fakeOpportunityRepo) GetByID(ctx context.Context, id common.UUID) (*opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.opportunities[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, common.NewError(common.CodeNotFound, "opportunity not found", nil)
}

func (r *fakeOpportunityRepo) ListActive(ctx context.Context, filter opportunity.ListFilter, limit, offset int) ([]opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []opportunity.Opportunity
	for _, o := range r.opportunities {
		if o.Active {
			items = append(items, *o)
		}
	}
	return items, nil
}

func (r *fakeOpportunityRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []opportunity.Opportunity
	for _, o := range r.opportunities {
		if o.CompanyID == companyID {
			items = append(items, *o)
		}
	}
	return items, nil
}

func (r *fakeOpportunityRepo) ListPending(ctx context.Context) ([]opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []opportunity.Opportunity
	for _, o := range r.opportunities {
		if !o.Active {
			items = append(items, *o)
		}
	}
	return items, nil
}

func (r *fakeOpportunityRepo) ListQuestions(ctx context.Context, opportunityID common.UUID) ([]opportunity.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]opportunity.Question(nil), r.questions[opportunityID]...), nil
}

func (r *fakeOpportunityRepo) DeleteCascade(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	o, ok := r.opportunities[id]
	if !ok {
		r.mu.Unlock()
		return common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	companyID := o.CompanyID
	delete(r.opportunities, id)
	delete(r.questions, id)
	r.mu.Unlock()
	if r.companies != nil {
		r.companies.detachPosted(companyID, id)
	}
	return nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[common.UUID]*application.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[common.UUID]*application.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.OpportunityID == app.OpportunityID && existing.StudentID == app.StudentID {
			return nil, common.NewError(common.CodeConflict, "application already exists", nil)
		}
	}
	if app.ID.IsZero() {
		app.ID = common.NewUUID()
	}
	app.AppliedAt = time.Now()
	app.UpdatedAt = app.AppliedAt
	stored := app
	r.applications[app.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app, ok := r.applications[id]; ok {
		copied := *app
		return &copied, nil
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) FindByOpportunityAndStudent(ctx context.Context, opportunityID, studentID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.applications {
		if app.OpportunityID == opportunityID && app.StudentID == studentID {
			copied := *app
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID common.UUID, filter application.ListFilter) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.applications {
		if app.StudentID == studentID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByCompany(ctx context.Context, companyID common.UUID, filter application.ListFilter) ([]application.Application, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.applications[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	app.UpdatedAt = time.Now()
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.applications[id]; !ok {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	delete(r.applications, id)
	return nil
}

func (r *fakeApplicationRepo) ListAnswers(ctx context.Context, applicationID common.UUID) ([]application.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app, ok := r.applications[applicationID]; ok {
		return append([]application.Answer(nil), app.Answers...), nil
	}
	return nil, nil
}
