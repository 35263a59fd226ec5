package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theafricanengineer/mozillians/internal/domain/profile"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type VouchUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewVouchUseCase(pr profile.Repository, log logger.Logger) *VouchUseCase {
	return &VouchUseCase{profileRepo: pr, logger: log}
}

type VouchInput struct {
	VoucheeID     uuid.UUID
	VoucherUserID uuid.UUID
}

type VouchOutput struct {
	Vouchee *profile.Profile

	// AlreadyVouched means the target was vouched before this call.
	// Re-vouching is treated as success; the caller just sees the vouched
	// state again.
	AlreadyVouched bool
}

func (uc *VouchUseCase) Execute(ctx context.Context, input VouchInput) (*VouchOutput, error) {
	voucher, err := uc.profileRepo.GetByUserID(ctx, input.VoucherUserID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load voucher profile", err)
	}

	vouchee, err := uc.profileRepo.GetByID(ctx, input.VoucheeID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, apperror.NewInternal("failed to load vouchee profile", err)
	}

	flipped, err := uc.profileRepo.Vouch(ctx, vouchee.ID, voucher.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to vouch profile", err)
	}

	if flipped {
		uc.logger.Info("profile vouched",
			zap.String("vouchee", vouchee.Username), zap.String("voucher", voucher.Username))
		vouchee.IsVouched = true
		vouchee.VouchedBy = &voucher.ID
	}

	return &VouchOutput{Vouchee: vouchee, AlreadyVouched: !flipped}, nil
}
