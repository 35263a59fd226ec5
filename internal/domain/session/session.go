package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store holds live sessions plus their one-shot flash messages. Deleting a
// session invalidates the cookie immediately even though the signed token
// inside it is still within its lifespan.
type Store interface {
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*Session, error)
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddFlash(ctx context.Context, sessionID uuid.UUID, msg string) error
	PopFlashes(ctx context.Context, sessionID uuid.UUID) ([]string, error)
}
