package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theafricanengineer/mozillians/internal/domain/apiapp"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
)

type postgresAPIAppRepo struct {
	db *pgxpool.Pool
}

func NewPostgresAPIAppRepo(db *pgxpool.Pool) apiapp.Repository {
	return &postgresAPIAppRepo{db: db}
}

func (r *postgresAPIAppRepo) ActiveForUser(ctx context.Context, ownerID uuid.UUID) ([]apiapp.App, error) {
	query := `
		SELECT id, name, key, owner_id, is_active
		FROM api_apps
		WHERE owner_id = $1 AND is_active = true
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query api apps", err)
	}
	defer rows.Close()

	apps := make([]apiapp.App, 0)
	for rows.Next() {
		var a apiapp.App
		if err := rows.Scan(&a.ID, &a.Name, &a.Key, &a.OwnerID, &a.IsActive); err != nil {
			return nil, apperror.NewInternal("failed to scan api app", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating api apps", err)
	}
	return apps, nil
}
