package auth

import (
	"context"
	"testing"

	"car-rental/pkg/auth"
	"car-rental/pkg/config"
	"car-rental/pkg/model"
	"car-rental/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)

	cfg := &config.Config{
		Admin: config.AdminConfig{Email: "Owner@Example.com", PasswordHash: hash},
	}
	jwtManager := auth.NewJWTManager("jwt-secret")
	svc := NewAuthService(cfg, jwtManager, newSessionStore(t))

	tests := []struct {
		name    string
		req     model.LoginRequest
		wantErr error
	}{
		{name: "valid credentials", req: model.LoginRequest{Email: "owner@example.com", Password: "s3cret-pass"}},
		{name: "email is case insensitive", req: model.LoginRequest{Email: " OWNER@example.com", Password: "s3cret-pass"}},
		{name: "wrong password", req: model.LoginRequest{Email: "owner@example.com", Password: "nope"}, wantErr: ErrInvalidCredentials},
		{name: "unknown email", req: model.LoginRequest{Email: "someone@example.com", Password: "s3cret-pass"}, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), &tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "owner@example.com", resp.Admin.Email)
			assert.Equal(t, model.RoleAdmin, resp.Admin.Role)

			claims, err := jwtManager.ValidateToken(resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, model.RoleAdmin, claims.Role)
		})
	}
}

func TestLogout(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)

	cfg := &config.Config{
		Admin: config.AdminConfig{Email: "owner@example.com", PasswordHash: hash},
	}
	jwtManager := auth.NewJWTManager("jwt-secret")
	sessions := newSessionStore(t)
	svc := NewAuthService(cfg, jwtManager, sessions)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &model.LoginRequest{Email: "owner@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	claims, err := jwtManager.ValidateToken(resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err := sessions.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	// a fresh login gets a new session
	again, err := svc.Login(ctx, &model.LoginRequest{Email: "owner@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	fresh, err := jwtManager.ValidateToken(again.AccessToken)
	require.NoError(t, err)

	revoked, err = sessions.IsRevoked(ctx, fresh.ID)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func newSessionStore(t *testing.T) *auth.SessionStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewFromAddr(mr.Addr())
	t.Cleanup(func() { client.Close() })
	return auth.NewSessionStore(client)
}
