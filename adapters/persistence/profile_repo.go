package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theafricanengineer/mozillians/internal/domain/profile"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, log logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: log}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var profileColumns = []string{
	"p.id", "p.user_id", "u.username", "p.full_name", "p.bio", "p.photo_url",
	"p.is_vouched", "p.vouched_by", "p.country", "p.region", "p.city", "p.updated_at",
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Username, &p.FullName, &p.Bio, &p.PhotoURL,
		&p.IsVouched, &p.VouchedBy, &p.Country, &p.Region, &p.City, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresProfileRepo) collect(ctx context.Context, builder sq.SelectBuilder) ([]profile.Profile, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan profile", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profiles", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) getOne(ctx context.Context, where string, arg any) (*profile.Profile, error) {
	builder := psql.Select(profileColumns...).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		Where(sq.Eq{where: arg})

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile query", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", where)
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	return r.getOne(ctx, "p.id", id)
}

func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return r.getOne(ctx, "p.user_id", userID)
}

func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $2, bio = $3, photo_url = $4,
		    country = $5, region = $6, city = $7, updated_at = $8
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.FullName, p.Bio, p.PhotoURL,
		p.Country, p.Region, p.City, p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to update profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) Vouch(ctx context.Context, profileID, voucherID uuid.UUID) (bool, error) {
	// The is_vouched guard makes re-vouching a no-op instead of silently
	// reassigning the voucher.
	query := `
		UPDATE profiles
		SET is_vouched = true, vouched_by = $2, updated_at = NOW()
		WHERE id = $1 AND is_vouched = false
	`
	tag, err := r.db.Exec(ctx, query, profileID, voucherID)
	if err != nil {
		return false, apperror.NewInternal("failed to vouch profile", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresProfileRepo) Anonymize(ctx context.Context, profileID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin anonymize tx", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE profiles
		SET full_name = '', bio = '', photo_url = NULL,
		    is_vouched = false, vouched_by = NULL,
		    country = '', region = '', city = '', updated_at = NOW()
		WHERE id = $1
	`, profileID)
	if err != nil {
		return apperror.NewInternal("failed to anonymize profile", err)
	}

	// The username is part of the public profile URL, so it gets
	// randomized along with the personal fields.
	_, err = tx.Exec(ctx, `
		UPDATE users
		SET username = 'member-' || left(md5(random()::text), 12), email = ''
		WHERE id = (SELECT user_id FROM profiles WHERE id = $1)
	`, profileID)
	if err != nil {
		return apperror.NewInternal("failed to anonymize user", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit anonymize tx", err)
	}
	return nil
}

func (r *postgresProfileRepo) VouchedBy(ctx context.Context, voucherID uuid.UUID) ([]profile.Profile, error) {
	builder := psql.Select(profileColumns...).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		Where(sq.Eq{"p.vouched_by": voucherID}).
		OrderBy("p.full_name ASC")
	return r.collect(ctx, builder)
}

func searchConditions(query string, includeNonVouched bool) sq.And {
	cond := sq.And{
		sq.Expr(
			"(p.ts @@ websearch_to_tsquery('simple', ?) OR u.username ILIKE '%' || ? || '%')",
			query, query,
		),
		sq.NotEq{"p.full_name": ""},
	}
	if !includeNonVouched {
		cond = append(cond, sq.Eq{"p.is_vouched": true})
	}
	return cond
}

func (r *postgresProfileRepo) SearchCount(ctx context.Context, query string, includeNonVouched bool) (int, error) {
	builder := psql.Select("COUNT(*)").
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		Where(searchConditions(query, includeNonVouched))

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, apperror.NewInternal("failed to build search count query", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, apperror.NewInternal("failed to count search results", err)
	}
	return count, nil
}

func (r *postgresProfileRepo) Search(ctx context.Context, query string, includeNonVouched bool, limit, offset int) ([]profile.Profile, error) {
	builder := psql.Select(profileColumns...).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		Where(searchConditions(query, includeNonVouched)).
		OrderBy("p.full_name ASC", "u.username ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	return r.collect(ctx, builder)
}

func (r *postgresProfileRepo) ByLocation(ctx context.Context, f profile.LocationFilter) ([]profile.Profile, error) {
	builder := psql.Select(profileColumns...).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		Where(sq.Eq{"p.is_vouched": true, "p.country": f.Country}).
		Where(sq.NotEq{"p.full_name": ""}).
		OrderBy("p.full_name ASC")

	if f.City != "" {
		builder = builder.Where("LOWER(p.city) = LOWER(?)", f.City)
	}
	if f.Region != "" {
		builder = builder.Where("LOWER(p.region) = LOWER(?)", f.Region)
	}

	return r.collect(ctx, builder)
}
