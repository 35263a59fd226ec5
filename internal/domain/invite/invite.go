package invite

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Invite struct {
	ID        uuid.UUID  `json:"id"`
	InviterID uuid.UUID  `json:"inviter_id"`
	Recipient string     `json:"recipient"`
	Code      string     `json:"code"`
	Redeemed  bool       `json:"redeemed"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, inv *Invite) error
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
}
