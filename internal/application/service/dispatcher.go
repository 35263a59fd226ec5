package service

import (
	"context"

	"github.com/google/uuid"
)

// DeletionTask is enqueued when a member deletes their account. It carries
// the email captured before anonymization since the row no longer has it by
// the time the worker runs.
type DeletionTask struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Email     string    `json:"email"`
}

// TaskDispatcher hands background work to the message broker. Fire and
// forget; callers do not observe execution.
type TaskDispatcher interface {
	EnqueueDeletion(ctx context.Context, task DeletionTask) error
}
