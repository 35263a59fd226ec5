package invite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theafricanengineer/mozillians/internal/application/service"
	"github.com/theafricanengineer/mozillians/internal/domain/invite"
	"github.com/theafricanengineer/mozillians/internal/domain/profile"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type InviteUseCase struct {
	inviteRepo invite.Repository
	mailer     service.Mailer
	logger     logger.Logger
}

func NewInviteUseCase(ir invite.Repository, mailer service.Mailer, log logger.Logger) *InviteUseCase {
	return &InviteUseCase{inviteRepo: ir, mailer: mailer, logger: log}
}

type InviteInput struct {
	Inviter   *profile.Profile
	Recipient string
}

type InviteOutput struct {
	Invite *invite.Invite
}

func (uc *InviteUseCase) Execute(ctx context.Context, input InviteInput) (*InviteOutput, error) {
	inv := &invite.Invite{
		ID:        uuid.New(),
		InviterID: input.Inviter.ID,
		Recipient: input.Recipient,
		Code:      uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.inviteRepo.Create(ctx, inv); err != nil {
		return nil, apperror.NewInternal("failed to persist invite", err)
	}

	inviterName := input.Inviter.FullName
	if inviterName == "" {
		inviterName = input.Inviter.Username
	}

	err := uc.mailer.SendInvite(ctx, service.InviteMail{
		Recipient:   inv.Recipient,
		InviterName: inviterName,
		Code:        inv.Code,
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to send invite mail", err)
	}

	now := time.Now().UTC()
	if err := uc.inviteRepo.MarkSent(ctx, inv.ID, now); err != nil {
		// The mail is already out; a failed bookkeeping write should not
		// fail the request.
		uc.logger.Warn("failed to mark invite as sent", zap.String("invite_id", inv.ID.String()), zap.Error(err))
	} else {
		inv.SentAt = &now
	}

	uc.logger.Info("invite sent",
		zap.String("recipient", inv.Recipient), zap.String("inviter", input.Inviter.Username))

	return &InviteOutput{Invite: inv}, nil
}
