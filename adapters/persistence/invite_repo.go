package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theafricanengineer/mozillians/internal/domain/invite"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
)

type postgresInviteRepo struct {
	db *pgxpool.Pool
}

func NewPostgresInviteRepo(db *pgxpool.Pool) invite.Repository {
	return &postgresInviteRepo{db: db}
}

func (r *postgresInviteRepo) Create(ctx context.Context, inv *invite.Invite) error {
	query := `
		INSERT INTO invites (id, inviter_id, recipient, code, redeemed, created_at)
		VALUES ($1, $2, $3, $4, false, $5)
	`
	_, err := r.db.Exec(ctx, query, inv.ID, inv.InviterID, inv.Recipient, inv.Code, inv.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to insert invite", err)
	}
	return nil
}

func (r *postgresInviteRepo) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE invites SET sent_at = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		return apperror.NewInternal("failed to mark invite sent", err)
	}
	return nil
}
