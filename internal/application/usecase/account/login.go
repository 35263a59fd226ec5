package account

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/theafricanengineer/mozillians/internal/domain/session"
	"github.com/theafricanengineer/mozillians/internal/domain/user"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/auth"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

var ErrInvalidCredentials = errors.New("email or password is incorrect")

type LoginUseCase struct {
	userRepo user.Repository
	sessions session.Store
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(ur user.Repository, sessions session.Store, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{userRepo: ur, sessions: sessions, jwtSvc: jwtSvc, logger: log}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token string
	User  *user.User
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	u, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperror.NewInternal("failed to look up user", err)
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	sess, err := uc.sessions.Create(ctx, u.ID, uc.jwtSvc.Lifespan())
	if err != nil {
		return nil, apperror.NewInternal("failed to create session", err)
	}

	token, err := uc.jwtSvc.GenerateToken(sess.ID, u.ID)
	if err != nil {
		uc.logger.Error("failed to sign session token", err, zap.String("user_id", u.ID.String()))
		return nil, apperror.NewInternal("failed to sign session token", err)
	}

	return &LoginOutput{Token: token, User: u}, nil
}
