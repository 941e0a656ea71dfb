package auth

import (
	"context"
	"errors"
	"time"

	"car-rental/pkg/redis"
)

const revokedKeyPrefix = "session:revoked:"

// SessionChecker reports whether a session was ended before its token expired
type SessionChecker interface {
	IsRevoked(ctx context.Context, id string) (bool, error)
}

// SessionStore keeps ended admin sessions in Redis until their tokens expire
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewSessionStore creates a session store backed by client
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		now:    time.Now,
	}
}

// Revoke ends the session described by claims
func (s *SessionStore) Revoke(ctx context.Context, claims *Claims) error {
	if claims.ID == "" {
		return ErrInvalidToken
	}

	ttl := AccessTokenTTL
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		// already unusable
		return nil
	}

	return s.client.Set(ctx, revokedKeyPrefix+claims.ID, claims.Email, ttl)
}

// IsRevoked implements SessionChecker
func (s *SessionStore) IsRevoked(ctx context.Context, id string) (bool, error) {
	var email string
	err := s.client.Get(ctx, revokedKeyPrefix+id, &email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.ErrNotFound):
		return false, nil
	}
	return false, err
}
