package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theafricanengineer/mozillians/internal/domain/profile"
	"github.com/theafricanengineer/mozillians/internal/domain/user"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type ViewProfileUseCase struct {
	userRepo    user.Repository
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewViewProfileUseCase(ur user.Repository, pr profile.Repository, log logger.Logger) *ViewProfileUseCase {
	return &ViewProfileUseCase{userRepo: ur, profileRepo: pr, logger: log}
}

type ViewProfileInput struct {
	Username     string
	ViewerUserID uuid.UUID
}

type ViewProfileOutput struct {
	User    *user.User
	Profile *profile.Profile

	// CanVouch is set when the target is unvouched and the viewer is
	// vouched; the page then carries a prefilled vouch form.
	CanVouch bool
}

func (uc *ViewProfileUseCase) Execute(ctx context.Context, input ViewProfileInput) (*ViewProfileOutput, error) {
	u, err := uc.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, apperror.NewInternal("failed to resolve user", err)
	}

	p, err := uc.profileRepo.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load profile", err)
	}

	// Incomplete profiles are invisible to everyone.
	if !p.IsComplete() {
		return nil, apperror.NewNotFound("profile", input.Username)
	}

	viewer, err := uc.profileRepo.GetByUserID(ctx, input.ViewerUserID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load viewer profile", err)
	}

	if !viewer.IsVouched && viewer.UserID != u.ID {
		uc.logger.Warn("unvouched viewer forbidden from profile",
			zap.String("viewer", viewer.Username), zap.String("target", input.Username))
		return nil, apperror.NewPermissionDenied("viewer is not vouched")
	}

	return &ViewProfileOutput{
		User:     u,
		Profile:  p,
		CanVouch: !p.IsVouched && viewer.IsVouched,
	}, nil
}
