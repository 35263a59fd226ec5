package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/theafricanengineer/mozillians/internal/domain/group"
	"github.com/theafricanengineer/mozillians/internal/domain/profile"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/logger"
	"github.com/theafricanengineer/mozillians/pkg/pagination"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	// PaginationThreshold is the result count above which the page shows
	// pagination controls.
	PaginationThreshold = 20

	groupResultLimit = 50
)

type SearchUseCase struct {
	profileRepo profile.Repository
	groupRepo   group.Repository
	logger      logger.Logger
}

func NewSearchUseCase(pr profile.Repository, gr group.Repository, log logger.Logger) *SearchUseCase {
	return &SearchUseCase{profileRepo: pr, groupRepo: gr, logger: log}
}

type SearchInput struct {
	Query             string
	IncludeNonVouched bool
	Limit             int
	Page              string
}

type SearchOutput struct {
	People        []profile.Profile
	Groups        []group.Group
	CuratedGroups []group.Group
	Page          pagination.Page

	// SingleMatch is set when exactly one profile and no groups matched;
	// the handler short-circuits to that profile instead of a listing.
	SingleMatch *profile.Profile

	ShowPagination bool
}

func (uc *SearchUseCase) Execute(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	total, err := uc.profileRepo.SearchCount(ctx, input.Query, input.IncludeNonVouched)
	if err != nil {
		uc.logger.Error("profile search count failed", err, zap.String("query", input.Query))
		return nil, apperror.NewInternal("search failed", err)
	}

	pg := pagination.New(total, limit).Page(input.Page)

	people, err := uc.profileRepo.Search(ctx, input.Query, input.IncludeNonVouched, pg.Limit, pg.Offset)
	if err != nil {
		uc.logger.Error("profile search failed", err, zap.String("query", input.Query))
		return nil, apperror.NewInternal("search failed", err)
	}

	groups, err := uc.groupRepo.Search(ctx, input.Query, groupResultLimit)
	if err != nil {
		uc.logger.Error("group search failed", err, zap.String("query", input.Query))
		return nil, apperror.NewInternal("search failed", err)
	}

	curated, err := uc.groupRepo.Curated(ctx)
	if err != nil {
		uc.logger.Error("curated group lookup failed", err)
		return nil, apperror.NewInternal("search failed", err)
	}

	out := &SearchOutput{
		People:         people,
		Groups:         groups,
		CuratedGroups:  curated,
		Page:           pg,
		ShowPagination: total > PaginationThreshold,
	}

	if total == 1 && len(groups) == 0 && len(people) == 1 {
		out.SingleMatch = &people[0]
	}

	return out, nil
}
