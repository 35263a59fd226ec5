package account

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theafricanengineer/mozillians/internal/application/service"
	"github.com/theafricanengineer/mozillians/internal/domain/apiapp"
	"github.com/theafricanengineer/mozillians/internal/domain/group"
	"github.com/theafricanengineer/mozillians/internal/domain/profile"
	"github.com/theafricanengineer/mozillians/internal/domain/user"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

const photoFolder = "avatars"

type EditProfileUseCase struct {
	userRepo    user.Repository
	profileRepo profile.Repository
	groupRepo   group.Repository
	appRepo     apiapp.Repository
	uploader    service.Uploader
	logger      logger.Logger
}

func NewEditProfileUseCase(
	ur user.Repository,
	pr profile.Repository,
	gr group.Repository,
	ar apiapp.Repository,
	uploader service.Uploader,
	log logger.Logger,
) *EditProfileUseCase {
	return &EditProfileUseCase{
		userRepo:    ur,
		profileRepo: pr,
		groupRepo:   gr,
		appRepo:     ar,
		uploader:    uploader,
		logger:      log,
	}
}

// EditContext is everything the edit page shows besides the bound forms.
type EditContext struct {
	User          *user.User
	Profile       *profile.Profile
	UserGroups    string
	UserSkills    string
	UserLanguages string
	MyVouches     []profile.Profile
	Apps          []apiapp.App
}

// Load reads the caller's records fresh from the store rather than trusting
// anything cached on the request, so a following save lands on the
// canonical row.
func (uc *EditProfileUseCase) Load(ctx context.Context, userID uuid.UUID) (*EditContext, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load user", err)
	}

	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load profile", err)
	}

	ec := &EditContext{User: u, Profile: p}

	for _, m := range []struct {
		kind group.Kind
		dst  *string
	}{
		{group.KindGroup, &ec.UserGroups},
		{group.KindSkill, &ec.UserSkills},
		{group.KindLanguage, &ec.UserLanguages},
	} {
		gs, err := uc.groupRepo.ForProfile(ctx, p.ID, m.kind)
		if err != nil {
			return nil, apperror.NewInternal("failed to load memberships", err)
		}
		*m.dst = group.Stringify(gs)
	}

	ec.MyVouches, err = uc.profileRepo.VouchedBy(ctx, p.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load vouches", err)
	}

	ec.Apps, err = uc.appRepo.ActiveForUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load api apps", err)
	}

	return ec, nil
}

type SaveInput struct {
	UserID uuid.UUID

	Username string
	Email    string

	FullName string
	Bio      string
	Country  string
	Region   string
	City     string

	Groups    string
	Skills    string
	Languages string

	// Photo is the uploaded avatar, nil when the form carried none.
	Photo io.Reader
}

type SaveOutput struct {
	Username        string
	UsernameChanged bool
}

func (uc *EditProfileUseCase) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	u, err := uc.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load user", err)
	}
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load profile", err)
	}

	oldUsername := u.Username
	u.Username = input.Username
	u.Email = input.Email

	p.FullName = input.FullName
	p.Bio = input.Bio
	p.Country = strings.ToLower(input.Country)
	p.Region = input.Region
	p.City = input.City
	p.UpdatedAt = time.Now().UTC()

	if input.Photo != nil {
		url, err := uc.uploader.Upload(ctx, input.Photo, photoFolder, p.ID.String())
		if err != nil {
			return nil, apperror.NewInternal("failed to upload photo", err)
		}
		p.PhotoURL = &url
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, apperror.NewInternal("failed to save user", err)
	}
	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save profile", err)
	}

	for _, m := range []struct {
		kind  group.Kind
		names string
	}{
		{group.KindGroup, input.Groups},
		{group.KindSkill, input.Skills},
		{group.KindLanguage, input.Languages},
	} {
		if err := uc.groupRepo.ReplaceForProfile(ctx, p.ID, m.kind, splitNames(m.names)); err != nil {
			return nil, apperror.NewInternal("failed to save memberships", err)
		}
	}

	if u.Username != oldUsername {
		uc.logger.Info("username changed",
			zap.String("old", oldUsername), zap.String("new", u.Username))
	}

	return &SaveOutput{Username: u.Username, UsernameChanged: u.Username != oldUsername}, nil
}

func splitNames(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
