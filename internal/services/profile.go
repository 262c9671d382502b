package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type profileService struct {
	txm         domain.TxManager
	profileRepo domain.ProfileRepository
}

func NewProfileService(txm domain.TxManager, profileRepo domain.ProfileRepository) domain.ProfileService {
	return &profileService{txm: txm, profileRepo: profileRepo}
}

func (s *profileService) GetProfile(ctx context.Context, id domain.Identity) (*domain.Profile, error) {
	var profile *domain.Profile
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		profile, err = loadOrCreateProfile(ctx, s.profileRepo, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveProfile applies the non-empty fields to the caller's profile.
func (s *profileService) SaveProfile(ctx context.Context, id domain.Identity, displayName, teeShirtSize string) (*domain.Profile, error) {
	displayName = strings.TrimSpace(displayName)
	teeShirtSize = strings.ToUpper(strings.TrimSpace(teeShirtSize))
	if teeShirtSize != "" && !slices.Contains(domain.TeeShirtSizes, teeShirtSize) {
		return nil, fmt.Errorf("unknown tee shirt size %q: %w", teeShirtSize, domain.ErrInvalidInput)
	}

	var profile *domain.Profile
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		profile, err = loadOrCreateProfile(ctx, s.profileRepo, id)
		if err != nil {
			return err
		}
		if displayName != "" {
			profile.DisplayName = displayName
		}
		if teeShirtSize != "" {
			profile.TeeShirtSize = teeShirtSize
		}
		profile.UpdatedAt = time.Now()
		return s.profileRepo.Update(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
