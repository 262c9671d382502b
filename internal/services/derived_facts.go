package services

import (
	"context"
	"fmt"
	"strings"

	"conferencecentral/internal/domain"
)

const announcementPrefix = "Last chance to attend! The following conferences are nearly sold out: "

type derivedFactService struct {
	conferenceRepo domain.ConferenceRepository
	sessionRepo    domain.SessionRepository
	cache          domain.DerivedFactCache
}

// NewDerivedFactService returns a service that recomputes the announcement and
// featured speakers into cache. Recomputes read committed data only and are
// best-effort: callers log their errors and move on.
func NewDerivedFactService(conferenceRepo domain.ConferenceRepository, sessionRepo domain.SessionRepository, cache domain.DerivedFactCache) domain.DerivedFactService {
	return &derivedFactService{
		conferenceRepo: conferenceRepo,
		sessionRepo:    sessionRepo,
		cache:          cache,
	}
}

func (s *derivedFactService) RecomputeAnnouncement(ctx context.Context) (string, error) {
	names, err := s.conferenceRepo.ListNamesBySeatsRange(ctx, 0, domain.NearlySoldOutThreshold)
	if err != nil {
		return "", fmt.Errorf("list nearly sold out conferences: %w", err)
	}
	if len(names) == 0 {
		s.cache.DeleteAnnouncement()
		return "", nil
	}
	text := announcementPrefix + strings.Join(names, ", ")
	s.cache.SetAnnouncement(text)
	return text, nil
}

// RecomputeFeaturedSpeaker stores speaker as the conference's featured speaker
// when they hold two or more of its sessions. Otherwise the cache is left
// untouched, including any entry for a different speaker.
func (s *derivedFactService) RecomputeFeaturedSpeaker(ctx context.Context, conferenceID, speaker string) error {
	if speaker == "" || speaker == domain.NoSpeaker {
		return nil
	}
	sessions, err := s.sessionRepo.ListByConference(ctx, conferenceID)
	if err != nil {
		return fmt.Errorf("list sessions of conference %s: %w", conferenceID, err)
	}
	names := make([]string, 0)
	for _, sess := range sessions {
		if sess.Speaker == speaker {
			names = append(names, sess.Name)
		}
	}
	if len(names) < 2 {
		return nil
	}
	s.cache.SetFeaturedSpeaker(domain.FeaturedSpeaker{ConferenceID: conferenceID, Speaker: speaker, SessionNames: names})
	return nil
}

func (s *derivedFactService) Announcement() (string, bool) {
	return s.cache.Announcement()
}

func (s *derivedFactService) FeaturedSpeaker(ctx context.Context, conferenceID string) (domain.FeaturedSpeaker, bool, error) {
	if _, err := s.conferenceRepo.GetByID(ctx, conferenceID); err != nil {
		return domain.FeaturedSpeaker{}, false, err
	}
	entry, ok := s.cache.FeaturedSpeaker(conferenceID)
	return entry, ok, nil
}
