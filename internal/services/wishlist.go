package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type wishlistService struct {
	txm            domain.TxManager
	sessionRepo    domain.SessionRepository
	profileRepo    domain.ProfileRepository
	contextTimeout time.Duration
}

func NewWishlistService(txm domain.TxManager, sessionRepo domain.SessionRepository, profileRepo domain.ProfileRepository, timeout time.Duration) domain.WishlistService {
	return &wishlistService{
		txm:            txm,
		sessionRepo:    sessionRepo,
		profileRepo:    profileRepo,
		contextTimeout: timeout,
	}
}

func (s *wishlistService) AddToWishlist(ctx context.Context, id domain.Identity, sessionID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
			return err
		}
		profile, err := loadOrCreateProfile(ctx, s.profileRepo, id)
		if err != nil {
			return err
		}
		if !profile.AddToWishlist(sessionID) {
			return fmt.Errorf("session %s already in wishlist: %w", sessionID, domain.ErrConflict)
		}
		profile.UpdatedAt = time.Now()
		return s.profileRepo.Update(ctx, profile)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFromWishlist reports whether the session was in the wishlist.
func (s *wishlistService) RemoveFromWishlist(ctx context.Context, id domain.Identity, sessionID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	removed := false
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		profile, err := loadOrCreateProfile(ctx, s.profileRepo, id)
		if err != nil {
			return err
		}
		removed = profile.RemoveFromWishlist(sessionID)
		if !removed {
			return nil
		}
		profile.UpdatedAt = time.Now()
		return s.profileRepo.Update(ctx, profile)
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (s *wishlistService) ListWishlist(ctx context.Context, id domain.Identity) ([]*domain.Session, error) {
	return s.listFiltered(ctx, id, func(*domain.Session) bool { return true })
}

func (s *wishlistService) ListWishlistByType(ctx context.Context, id domain.Identity, typeOfSession string) ([]*domain.Session, error) {
	typeOfSession = strings.TrimSpace(typeOfSession)
	return s.listFiltered(ctx, id, func(sess *domain.Session) bool { return sess.TypeOfSession == typeOfSession })
}

func (s *wishlistService) ListWishlistBySpeaker(ctx context.Context, id domain.Identity, speaker string) ([]*domain.Session, error) {
	speaker = strings.TrimSpace(speaker)
	return s.listFiltered(ctx, id, func(sess *domain.Session) bool { return sess.Speaker == speaker })
}

// listFiltered multi-gets the wishlist sessions and keeps those matching keep,
// in wishlist order.
func (s *wishlistService) listFiltered(ctx context.Context, id domain.Identity, keep func(*domain.Session) bool) ([]*domain.Session, error) {
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
	sessions, err := s.sessionRepo.GetByIDs(ctx, profile.WishlistSessionIDs)
	if err != nil {
		return nil, fmt.Errorf("get wishlist sessions: %w", err)
	}
	out := make([]*domain.Session, 0, len(sessions))
	for _, sess := range sessions {
		if keep(sess) {
			out = append(out, sess)
		}
	}
	return out, nil
}
