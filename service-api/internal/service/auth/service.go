package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"car-rental/pkg/auth"
	"car-rental/pkg/config"
	"car-rental/pkg/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service defines the auth service interface
type Service interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

// authService checks credentials against the configured admin account
type authService struct {
	jwtManager   *auth.JWTManager
	sessions     *auth.SessionStore
	adminEmail   string
	passwordHash string
}

// NewAuthService creates a new auth service instance.
func NewAuthService(
	cfg *config.Config,
	jwtManager *auth.JWTManager,
	sessions *auth.SessionStore,
) Service {
	return &authService{
		jwtManager:   jwtManager,
		sessions:     sessions,
		adminEmail:   strings.ToLower(strings.TrimSpace(cfg.Admin.Email)),
		passwordHash: cfg.Admin.PasswordHash,
	}
}

// Login authenticates the admin and returns a session token
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if s.adminEmail == "" || subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) != 1 {
		return nil, ErrInvalidCredentials
	}

	// verify password
	if err := auth.VerifyPassword(s.passwordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtManager.GenerateAccessToken(email, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Admin: model.Admin{
			Email: email,
			Role:  model.RoleAdmin,
		},
	}, nil
}

// Logout ends the session so its token is refused before it expires
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.sessions.Revoke(ctx, claims)
}
