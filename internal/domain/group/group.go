package group

import (
	"context"

	"github.com/google/uuid"
)

// Kind distinguishes the three named-collection flavors a profile can be a
// member of. They share one table and one editing UI.
type Kind string

const (
	KindGroup    Kind = "group"
	KindSkill    Kind = "skill"
	KindLanguage Kind = "language"
)

type Group struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Kind      Kind       `json:"kind"`
	StewardID *uuid.UUID `json:"steward_id,omitempty"`
	Curated   bool       `json:"curated"`
}

type Repository interface {
	// Curated lists groups promoted for discovery, ordered by name.
	Curated(ctx context.Context) ([]Group, error)

	// Stewarded lists the profile's group memberships that have a steward,
	// ordered by name.
	Stewarded(ctx context.Context, profileID uuid.UUID) ([]Group, error)

	// Search finds groups whose name matches the query text.
	Search(ctx context.Context, query string, limit int) ([]Group, error)

	// ForProfile lists the profile's memberships of one kind, ordered by name.
	ForProfile(ctx context.Context, profileID uuid.UUID, kind Kind) ([]Group, error)

	// ReplaceForProfile rewrites the profile's memberships of one kind,
	// creating missing groups on the fly.
	ReplaceForProfile(ctx context.Context, profileID uuid.UUID, kind Kind, names []string) error
}

// Stringify renders memberships the way the edit form expects them: a
// comma-separated list of names.
func Stringify(groups []Group) string {
	out := ""
	for i, g := range groups {
		if i > 0 {
			out += ", "
		}
		out += g.Name
	}
	return out
}
