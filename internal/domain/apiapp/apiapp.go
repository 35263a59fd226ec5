package apiapp

import (
	"context"

	"github.com/google/uuid"
)

// App is a registered API application owned by a member. The edit-profile
// page lists the owner's active apps.
type App struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Key      string    `json:"key"`
	OwnerID  uuid.UUID `json:"owner_id"`
	IsActive bool      `json:"is_active"`
}

type Repository interface {
	ActiveForUser(ctx context.Context, ownerID uuid.UUID) ([]App, error)
}
