package account

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theafricanengineer/mozillians/internal/application/service"
	"github.com/theafricanengineer/mozillians/internal/domain/profile"
	"github.com/theafricanengineer/mozillians/internal/domain/user"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type DeleteAccountUseCase struct {
	userRepo    user.Repository
	profileRepo profile.Repository
	dispatcher  service.TaskDispatcher
	logger      logger.Logger
}

func NewDeleteAccountUseCase(
	ur user.Repository,
	pr profile.Repository,
	dispatcher service.TaskDispatcher,
	log logger.Logger,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{userRepo: ur, profileRepo: pr, dispatcher: dispatcher, logger: log}
}

type DeleteAccountInput struct {
	UserID uuid.UUID
}

// Execute anonymizes the caller's profile. The marketing-list removal task
// is enqueued first, with the email captured before the anonymize write, so
// the worker tolerates running against an already-anonymized row. A failed
// enqueue is logged and otherwise ignored; the deletion itself must not
// depend on the broker.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	u, err := uc.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return apperror.NewInternal("failed to load user", err)
	}
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return apperror.NewInternal("failed to load profile", err)
	}

	task := service.DeletionTask{ProfileID: p.ID, Email: u.Email}
	if err := uc.dispatcher.EnqueueDeletion(ctx, task); err != nil {
		uc.logger.Error("failed to enqueue deletion task", err,
			zap.String("profile_id", p.ID.String()))
	}

	if err := uc.profileRepo.Anonymize(ctx, p.ID); err != nil {
		return apperror.NewInternal("failed to anonymize profile", err)
	}

	uc.logger.Info("account deleted", zap.String("user_id", u.ID.String()))
	return nil
}
