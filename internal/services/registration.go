package services

import (
	"context"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type registrationService struct {
	txm            domain.TxManager
	conferenceRepo domain.ConferenceRepository
	profileRepo    domain.ProfileRepository
	contextTimeout time.Duration
}

// NewRegistrationService returns the seat ledger. Register and Unregister read
// and write the caller's profile and the conference in a single transaction;
// conflicting concurrent attempts are retried by the TxManager, never here.
func NewRegistrationService(txm domain.TxManager, conferenceRepo domain.ConferenceRepository, profileRepo domain.ProfileRepository, timeout time.Duration) domain.RegistrationService {
	return &registrationService{
		txm:            txm,
		conferenceRepo: conferenceRepo,
		profileRepo:    profileRepo,
		contextTimeout: timeout,
	}
}

func (s *registrationService) Register(ctx context.Context, id domain.Identity, conferenceID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
		if err != nil {
			return err
		}
		profile, err := loadOrCreateProfile(ctx, s.profileRepo, id)
		if err != nil {
			return err
		}
		if profile.IsRegistered(conferenceID) {
			return fmt.Errorf("already registered for conference %s: %w", conferenceID, domain.ErrConflict)
		}
		if err := conf.Reserve(); err != nil {
			return fmt.Errorf("no seats available for conference %s: %w", conferenceID, err)
		}
		profile.AddRegistration(conferenceID)

		now := time.Now()
		conf.UpdatedAt = now
		profile.UpdatedAt = now
		if err := s.conferenceRepo.Update(ctx, conf); err != nil {
			return fmt.Errorf("update conference %s: %w", conferenceID, err)
		}
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			return fmt.Errorf("update profile %s: %w", id.UserID, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *registrationService) Unregister(ctx context.Context, id domain.Identity, conferenceID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	changed := false
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		changed = false
		conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
		if err != nil {
			return err
		}
		profile, err := loadOrCreateProfile(ctx, s.profileRepo, id)
		if err != nil {
			return err
		}
		if !profile.RemoveRegistration(conferenceID) {
			return nil
		}
		if err := conf.Release(); err != nil {
			return fmt.Errorf("release seat on conference %s: no seat held: %w", conferenceID, err)
		}

		now := time.Now()
		conf.UpdatedAt = now
		profile.UpdatedAt = now
		if err := s.conferenceRepo.Update(ctx, conf); err != nil {
			return fmt.Errorf("update conference %s: %w", conferenceID, err)
		}
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			return fmt.Errorf("update profile %s: %w", id.UserID, err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

func (s *registrationService) ListAttending(ctx context.Context, id domain.Identity) ([]*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	var profile *domain.Profile
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		profile, err = loadOrCreateProfile(ctx, s.profileRepo, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	conferences, err := s.conferenceRepo.GetByIDs(ctx, profile.RegisteredConferenceIDs)
	if err != nil {
		return nil, fmt.Errorf("get registered conferences: %w", err)
	}
	return withOrganizers(ctx, s.profileRepo, conferences)
}
