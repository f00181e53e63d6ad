package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/auth"
	"campushire/internal/domain/user"
	"campushire/internal/security"
)

type AuthService struct {
	users           user.Repository
	refreshTokens   auth.RefreshTokenRepository
	jwt             *security.JWTProvider
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	logger          *slog.Logger
}

func NewAuthService(users user.Repository, refreshTokens auth.RefreshTokenRepository, jwt *security.JWTProvider, accessTTL, refreshTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:           users,
		refreshTokens:   refreshTokens,
		jwt:             jwt,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
		logger:          logger,
	}
}

type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student company"`
}

type AuthResult struct {
	User   *user.User     `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "hash password", err)
	}
	account := user.User{
		ID:           common.NewUUID(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		Role:         user.Role(input.Role),
		PasswordHash: hash,
	}
	created, err := s.users.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", created.ID, "role", created.Role)
	return s.issueTokens(ctx, created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, err
	}
	if !security.CheckPassword(account.PasswordHash, password) {
		return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	return s.issueTokens(ctx, account)
}

// Refresh rotates the refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	stored, err := s.refreshTokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid refresh token", nil)
		}
		return nil, err
	}
	if stored.RevokedAt != nil || time.Now().After(stored.ExpiresAt) {
		return nil, common.NewError(common.CodeUnauthorized, "refresh token expired", nil)
	}
	account, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Revoke(ctx, refreshToken, time.Now().Unix()); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, account)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := s.refreshTokens.Revoke(ctx, refreshToken, time.Now().Unix())
	if common.Is(err, common.CodeNotFound) {
		return nil
	}
	return err
}

func (s *AuthService) LogoutAll(ctx context.Context, userID common.UUID) error {
	return s.refreshTokens.RevokeAll(ctx, userID, time.Now().Unix())
}

func (s *AuthService) GetUser(ctx context.Context, userID common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, account *user.User) (*AuthResult, error) {
	access, expiresAt, err := s.jwt.Generate(account.ID, string(account.Role), account.IsDemo, s.accessTokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "sign access token", err)
	}
	refresh, err := randomToken()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "generate refresh token", err)
	}
	record := auth.RefreshToken{
		ID:        common.NewUUID(),
		UserID:    account.ID,
		Token:     refresh,
		Role:      string(account.Role),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := s.refreshTokens.Store(ctx, record); err != nil {
		return nil, err
	}
	return &AuthResult{
		User: account,
		Tokens: auth.TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresAt:    expiresAt,
		},
	}, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
