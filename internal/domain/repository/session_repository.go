package repository

import (
	"context"
	"time"
)

// SessionRepository maps opaque session ids to user ids.
type SessionRepository interface {
	Create(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	// Get returns ErrNotFound when the session is unknown or expired.
	Get(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteAllForUser(ctx context.Context, userID int64) error
}
