package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/auth"
	"campushire/internal/security"
)

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*auth.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*auth.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Store(ctx context.Context, token auth.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := token
	r.tokens[token.Token] = &stored
	return nil
}

func (r *fakeRefreshTokenRepo) GetByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[token]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, common.NewError(common.CodeNotFound, "refresh token not found", nil)
}

func (r *fakeRefreshTokenRepo) Revoke(ctx context.Context, token string, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok || t.RevokedAt != nil {
		return common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	revokedAt := time.Unix(revokedAtUnix, 0)
	t.RevokedAt = &revokedAt
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAll(ctx context.Context, userID common.UUID, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	revokedAt := time.Unix(revokedAtUnix, 0)
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &revokedAt
		}
	}
	return nil
}

func newAuthService(users *fakeUserRepo, tokens *fakeRefreshTokenRepo) *AuthService {
	return NewAuthService(users, tokens, security.NewJWTProvider("test-secret"), 15*time.Minute, 7*24*time.Hour, testLogger())
}

func TestSignupIssuesTokens(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users, newFakeRefreshTokenRepo())

	result, err := service.Signup(context.Background(), SignupInput{
		Email:    "Asha@Example.COM",
		Password: "correct horse",
		Name:     "Asha",
		Role:     "student",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if result.User.Email != "asha@example.com" {
		t.Fatalf("email = %q, want lowercased", result.User.Email)
	}
	if result.User.PasswordHash == "correct horse" {
		t.Fatal("password stored in clear")
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatal("signup must issue both tokens")
	}

	_, err = service.Signup(context.Background(), SignupInput{
		Email:    "asha@example.com",
		Password: "another pass",
		Name:     "Asha",
		Role:     "student",
	})
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("duplicate signup error = %v, want conflict", err)
	}
}

func TestLoginChecksCredentials(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users, newFakeRefreshTokenRepo())
	if _, err := service.Signup(context.Background(), SignupInput{
		Email: "asha@example.com", Password: "correct horse", Name: "Asha", Role: "student",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := service.Login(context.Background(), "asha@example.com", "correct horse"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := service.Login(context.Background(), "asha@example.com", "wrong"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("bad password error = %v, want unauthorized", err)
	}
	if _, err := service.Login(context.Background(), "nobody@example.com", "correct horse"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("unknown email error = %v, want unauthorized", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	service := newAuthService(users, tokens)
	signedUp, err := service.Signup(context.Background(), SignupInput{
		Email: "asha@example.com", Password: "correct horse", Name: "Asha", Role: "student",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	first := signedUp.Tokens.RefreshToken
	refreshed, err := service.Refresh(context.Background(), first)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.Tokens.RefreshToken == first {
		t.Fatal("refresh must rotate the token")
	}
	// The presented token is single use.
	if _, err := service.Refresh(context.Background(), first); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("reused token error = %v, want unauthorized", err)
	}
}

func TestLogoutRevokes(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	service := newAuthService(users, tokens)
	signedUp, err := service.Signup(context.Background(), SignupInput{
		Email: "asha@example.com", Password: "correct horse", Name: "Asha", Role: "student",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if err := service.Logout(context.Background(), signedUp.Tokens.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := service.Refresh(context.Background(), signedUp.Tokens.RefreshToken); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("refresh after logout error = %v, want unauthorized", err)
	}
	// Unknown and empty tokens are swallowed.
	if err := service.Logout(context.Background(), "unknown"); err != nil {
		t.Fatalf("logout unknown token: %v", err)
	}
	if err := service.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout empty token: %v", err)
	}
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	service := newAuthService(users, tokens)
	signedUp, err := service.Signup(context.Background(), SignupInput{
		Email: "asha@example.com", Password: "correct horse", Name: "Asha", Role: "student",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	second, err := service.Login(context.Background(), "asha@example.com", "correct horse")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	if err := service.LogoutAll(context.Background(), signedUp.User.ID); err != nil {
		t.Fatalf("logout all: %v", err)
	}
	for _, token := range []string{signedUp.Tokens.RefreshToken, second.Tokens.RefreshToken} {
		if _, err := service.Refresh(context.Background(), token); !common.Is(err, common.CodeUnauthorized) {
			t.Fatalf("refresh after logout-all error = %v, want unauthorized", err)
		}
	}
}
