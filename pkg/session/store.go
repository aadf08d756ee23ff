// Package session is the server-side token registry. A signed token is only
// honored while its session key exists here, which gives logout and expiry
// real effect instead of trusting the token alone.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"fleetwatch-backend/internal/apperr"
)

const keyPrefix = "session:"

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore keys sessions by token id with the given time-to-live. The ttl
// should match the token expiry so a session never outlives its token.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Create registers a session for the token id.
func (s *Store) Create(ctx context.Context, tokenID string, userID int64) error {
	if err := s.client.Set(ctx, keyPrefix+tokenID, userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Resolve returns the user id behind an active session. Unknown, expired and
// revoked sessions all resolve to ErrUnauthorized.
func (s *Store) Resolve(ctx context.Context, tokenID string) (int64, error) {
	val, err := s.client.Get(ctx, keyPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("session expired or revoked: %w", apperr.ErrUnauthorized)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value %q: %w", val, apperr.ErrUnauthorized)
	}
	return userID, nil
}

// Revoke deletes the session. Revoking an already-absent session is not an
// error.
func (s *Store) Revoke(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, keyPrefix+tokenID).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
