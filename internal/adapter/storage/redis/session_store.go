package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"virtual-card-wallet/pkg/apperror"
)

// SessionStore keeps active wallet sessions in Redis, keyed by the
// token's session ID. A key that has expired or been deleted means the
// session is revoked.
type SessionStore struct {
	client *goredis.Client
	prefix string
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client *goredis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
	}
}

func (s *SessionStore) key(sessionID string) string {
	return s.prefix + sessionID
}

// Put records a session with the given lifetime. The value is the
// account email so the auth middleware can resolve the caller without
// trusting the token body alone.
func (s *SessionStore) Put(ctx context.Context, sessionID, email string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(sessionID), email, ttl).Err(); err != nil {
		return fmt.Errorf("redis session put: %w", err)
	}
	return nil
}

// GetEmail returns the email bound to a live session. A missing key
// yields ErrSessionRevoked.
func (s *SessionStore) GetEmail(ctx context.Context, sessionID string) (string, error) {
	email, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", apperror.ErrSessionRevoked()
	}
	if err != nil {
		return "", fmt.Errorf("redis session get: %w", err)
	}
	return email, nil
}

// Delete revokes a session. Deleting an absent session is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis session delete: %w", err)
	}
	return nil
}
