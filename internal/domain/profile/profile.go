package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name"`
	Bio       string     `json:"bio"`
	PhotoURL  *string    `json:"photo_url,omitempty"`
	IsVouched bool       `json:"is_vouched"`
	VouchedBy *uuid.UUID `json:"vouched_by,omitempty"`
	Country   string     `json:"country"`
	Region    string     `json:"region"`
	City      string     `json:"city"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsComplete reports whether the profile may be shown to other members.
func (p *Profile) IsComplete() bool {
	return p.FullName != ""
}

// LocationFilter narrows a country listing. Country is required; city and
// region match case-insensitively when set.
type LocationFilter struct {
	Country string
	Region  string
	City    string
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Update(ctx context.Context, p *Profile) error

	// Vouch marks the profile as vouched by voucherID. Vouching an
	// already-vouched profile is a no-op; the bool reports whether the
	// flag actually flipped.
	Vouch(ctx context.Context, profileID, voucherID uuid.UUID) (bool, error)

	// Anonymize strips personal data and revokes vouched status. One-way.
	Anonymize(ctx context.Context, profileID uuid.UUID) error

	// VouchedBy lists profiles this voucher has vouched for.
	VouchedBy(ctx context.Context, voucherID uuid.UUID) ([]Profile, error)

	// SearchCount reports how many profiles match the query so the page
	// number can be clamped before fetching.
	SearchCount(ctx context.Context, query string, includeNonVouched bool) (int, error)

	// Search runs a text search over member profiles.
	Search(ctx context.Context, query string, includeNonVouched bool, limit, offset int) ([]Profile, error)

	// ByLocation lists vouched profiles with a non-empty full name for a
	// country listing.
	ByLocation(ctx context.Context, f LocationFilter) ([]Profile, error)
}
