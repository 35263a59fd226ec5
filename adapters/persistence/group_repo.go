package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theafricanengineer/mozillians/internal/domain/group"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
)

type postgresGroupRepo struct {
	db *pgxpool.Pool
}

func NewPostgresGroupRepo(db *pgxpool.Pool) group.Repository {
	return &postgresGroupRepo{db: db}
}

func (r *postgresGroupRepo) collect(ctx context.Context, builder sq.SelectBuilder) ([]group.Group, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build group query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query groups", err)
	}
	defer rows.Close()

	groups := make([]group.Group, 0)
	for rows.Next() {
		var g group.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Kind, &g.StewardID, &g.Curated); err != nil {
			return nil, apperror.NewInternal("failed to scan group", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating groups", err)
	}
	return groups, nil
}

func groupSelect() sq.SelectBuilder {
	return psql.Select("g.id", "g.name", "g.kind", "g.steward_id", "g.curated").
		From("groups g")
}

func (r *postgresGroupRepo) Curated(ctx context.Context) ([]group.Group, error) {
	return r.collect(ctx, groupSelect().
		Where(sq.Eq{"g.curated": true, "g.kind": group.KindGroup}).
		OrderBy("g.name ASC"))
}

func (r *postgresGroupRepo) Stewarded(ctx context.Context, profileID uuid.UUID) ([]group.Group, error) {
	return r.collect(ctx, groupSelect().
		Join("group_members gm ON gm.group_id = g.id").
		Where(sq.Eq{"gm.profile_id": profileID, "g.kind": group.KindGroup}).
		Where(sq.NotEq{"g.steward_id": nil}).
		OrderBy("g.name ASC"))
}

func (r *postgresGroupRepo) Search(ctx context.Context, query string, limit int) ([]group.Group, error) {
	if query == "" {
		return []group.Group{}, nil
	}
	return r.collect(ctx, groupSelect().
		Where(sq.Eq{"g.kind": group.KindGroup}).
		Where("g.name ILIKE '%' || ? || '%'", query).
		OrderBy("g.name ASC").
		Limit(uint64(limit)))
}

func (r *postgresGroupRepo) ForProfile(ctx context.Context, profileID uuid.UUID, kind group.Kind) ([]group.Group, error) {
	return r.collect(ctx, groupSelect().
		Join("group_members gm ON gm.group_id = g.id").
		Where(sq.Eq{"gm.profile_id": profileID, "g.kind": kind}).
		OrderBy("g.name ASC"))
}

func (r *postgresGroupRepo) ReplaceForProfile(ctx context.Context, profileID uuid.UUID, kind group.Kind, names []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin membership tx", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM group_members gm
		USING groups g
		WHERE gm.group_id = g.id AND gm.profile_id = $1 AND g.kind = $2
	`, profileID, kind)
	if err != nil {
		return apperror.NewInternal("failed to clear memberships", err)
	}

	for _, name := range names {
		var groupID uuid.UUID
		err := tx.QueryRow(ctx, `
			INSERT INTO groups (id, name, kind, curated)
			VALUES ($1, $2, $3, false)
			ON CONFLICT (name, kind) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, uuid.New(), name, kind).Scan(&groupID)
		if err != nil {
			return apperror.NewInternal("failed to upsert group", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO group_members (group_id, profile_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, groupID, profileID)
		if err != nil {
			return apperror.NewInternal("failed to add membership", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit membership tx", err)
	}
	return nil
}
