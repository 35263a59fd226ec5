package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/theafricanengineer/mozillians/internal/domain/group"
	"github.com/theafricanengineer/mozillians/internal/domain/profile"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
)

type HomeUseCase struct {
	profileRepo profile.Repository
	groupRepo   group.Repository
}

func NewHomeUseCase(pr profile.Repository, gr group.Repository) *HomeUseCase {
	return &HomeUseCase{profileRepo: pr, groupRepo: gr}
}

type HomeInput struct {
	// UserID is nil for anonymous visitors.
	UserID *uuid.UUID
}

type HomeOutput struct {
	Profile       *profile.Profile
	MyGroups      []group.Group
	CuratedGroups []group.Group
}

func (uc *HomeUseCase) Execute(ctx context.Context, input HomeInput) (*HomeOutput, error) {
	if input.UserID == nil {
		return &HomeOutput{}, nil
	}

	p, err := uc.profileRepo.GetByUserID(ctx, *input.UserID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load profile", err)
	}

	myGroups, err := uc.groupRepo.Stewarded(ctx, p.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load stewarded groups", err)
	}

	curated, err := uc.groupRepo.Curated(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to load curated groups", err)
	}

	return &HomeOutput{Profile: p, MyGroups: myGroups, CuratedGroups: curated}, nil
}
