package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"campushire/internal/app"
	"campushire/internal/common"
	"campushire/internal/domain/profile"
	"campushire/internal/domain/user"
)

type stubUserRepo struct {
	byEmail map[string]*user.User
}

func (r *stubUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	if account.ID.IsZero() {
		account.ID = common.NewUUID()
	}
	stored := account
	r.byEmail[account.Email] = &stored
	return &stored, nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *stubUserRepo) CountByRole(ctx context.Context, role user.Role) (int, error) {
	return 0, nil
}

type stubCompanyRepo struct {
	profiles map[common.UUID]*profile.CompanyProfile
}

func (r *stubCompanyRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return nil, common.NewError(common.CodeNotFound, "company profile not found", nil)
}

func (r *stubCompanyRepo) Upsert(ctx context.Context, p profile.CompanyProfile) (*profile.CompanyProfile, error) {
	stored := p
	r.profiles[p.UserID] = &stored
	return &stored, nil
}

func (r *stubCompanyRepo) AppendPosted(ctx context.Context, userID, opportunityID common.UUID) error {
	return nil
}

func (r *stubCompanyRepo) CompanyNamesByUserIDs(ctx context.Context, userIDs []common.UUID) (map[common.UUID]string, error) {
	return map[common.UUID]string{}, nil
}

func newWebhookHandler(secret string) *WebhookHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := app.NewWebhookService(
		&stubUserRepo{byEmail: map[string]*user.User{}},
		&stubCompanyRepo{profiles: map[common.UUID]*profile.CompanyProfile{}},
		logger,
	)
	return NewWebhookHandler(service, secret)
}

func ingestRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/company-profile", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestIngestCompanyRejectsBadSecret(t *testing.T) {
	handler := newWebhookHandler("topsecret")

	req := ingestRequest(`{"email":"hr@acme.com","company_name":"Acme"}`)
	req.Header.Set("X-Webhook-Secret", "wrong")
	rec := httptest.NewRecorder()

	handler.IngestCompany(rec, req)
	if rec.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Result().StatusCode)
	}
}

func TestIngestCompanyAcceptsAlternateHeader(t *testing.T) {
	handler := newWebhookHandler("topsecret")

	req := ingestRequest(`{"email":"hr@acme.com","company_name":"Acme"}`)
	req.Header.Set("X-N8N-Secret", "topsecret")
	rec := httptest.NewRecorder()

	handler.IngestCompany(rec, req)
	if rec.Result().StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Result().StatusCode)
	}
}

func TestIngestCompanySecretCheckDisabledWhenUnset(t *testing.T) {
	handler := newWebhookHandler("")

	rec := httptest.NewRecorder()
	handler.IngestCompany(rec, ingestRequest(`{"email":"hr@acme.com","company_name":"Acme"}`))
	if rec.Result().StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Result().StatusCode)
	}

	var result app.CompanyIngestResult
	if err := json.NewDecoder(rec.Result().Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Created || result.Profile == nil || result.Profile.CompanyName != "Acme" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestIngestCompanyUpdatesExisting(t *testing.T) {
	handler := newWebhookHandler("")

	rec := httptest.NewRecorder()
	handler.IngestCompany(rec, ingestRequest(`{"email":"hr@acme.com","company_name":"Acme"}`))
	if rec.Result().StatusCode != http.StatusCreated {
		t.Fatalf("first push: expected 201, got %d", rec.Result().StatusCode)
	}

	rec = httptest.NewRecorder()
	handler.IngestCompany(rec, ingestRequest(`{"email":"hr@acme.com","company_name":"Acme Corp"}`))
	if rec.Result().StatusCode != http.StatusOK {
		t.Fatalf("second push: expected 200, got %d", rec.Result().StatusCode)
	}
}

func TestIngestCompanyValidationError(t *testing.T) {
	handler := newWebhookHandler("")

	rec := httptest.NewRecorder()
	handler.IngestCompany(rec, ingestRequest(`{"email":"hr@acme.com"}`))
	if rec.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Result().StatusCode)
	}
}
