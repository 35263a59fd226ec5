package directory

import (
	"context"
	"strings"

	"github.com/theafricanengineer/mozillians/internal/domain/profile"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
)

type ListCountryUseCase struct {
	profileRepo profile.Repository
}

func NewListCountryUseCase(pr profile.Repository) *ListCountryUseCase {
	return &ListCountryUseCase{profileRepo: pr}
}

type ListCountryInput struct {
	Country string
	Region  string
	City    string
}

type ListCountryOutput struct {
	Country string
	People  []profile.Profile
}

func (uc *ListCountryUseCase) Execute(ctx context.Context, input ListCountryInput) (*ListCountryOutput, error) {
	country := strings.ToLower(input.Country)

	people, err := uc.profileRepo.ByLocation(ctx, profile.LocationFilter{
		Country: country,
		Region:  input.Region,
		City:    input.City,
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to list profiles by location", err)
	}

	return &ListCountryOutput{Country: country, People: people}, nil
}
