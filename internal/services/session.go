package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type sessionService struct {
	txm            domain.TxManager
	conferenceRepo domain.ConferenceRepository
	sessionRepo    domain.SessionRepository
	derivedFacts   domain.DerivedFactService
	tasks          domain.TaskQueue
	contextTimeout time.Duration
}

func NewSessionService(txm domain.TxManager,
	conferenceRepo domain.ConferenceRepository,
	sessionRepo domain.SessionRepository,
	derivedFacts domain.DerivedFactService,
	tasks domain.TaskQueue,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		txm:            txm,
		conferenceRepo: conferenceRepo,
		sessionRepo:    sessionRepo,
		derivedFacts:   derivedFacts,
		tasks:          tasks,
		contextTimeout: timeout,
	}
}

// CreateSession adds a session to a conference owned by the caller. Once the
// session is stored, a featured speaker recompute is queued for its speaker.
func (s *sessionService) CreateSession(ctx context.Context, id domain.Identity, conferenceID string, in domain.SessionInput) (*domain.Session, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	session, err := newSessionFromInput(conferenceID, in)
	if err != nil {
		return nil, err
	}

	err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
		conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
		if err != nil {
			return err
		}
		if conf.OrganizerID != id.UserID {
			return fmt.Errorf("conference %s is owned by another organizer: %w", conferenceID, domain.ErrForbidden)
		}
		return s.sessionRepo.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	if session.Speaker != domain.NoSpeaker && s.derivedFacts != nil && s.tasks != nil {
		confID, speaker := session.ConferenceID, session.Speaker
		s.tasks.Enqueue(domain.Task{
			Name: "featured-speaker",
			Run: func(ctx context.Context) error {
				return s.derivedFacts.RecomputeFeaturedSpeaker(ctx, confID, speaker)
			},
		})
	}
	return session, nil
}

func newSessionFromInput(conferenceID string, in domain.SessionInput) (*domain.Session, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("session name is required: %w", domain.ErrInvalidInput)
	}
	if in.DurationMinutes < 0 {
		return nil, fmt.Errorf("duration must not be negative: %w", domain.ErrInvalidInput)
	}
	speaker := strings.TrimSpace(in.Speaker)
	if speaker == "" {
		speaker = domain.NoSpeaker
	}
	typeOfSession := strings.TrimSpace(in.TypeOfSession)
	if typeOfSession == "" {
		typeOfSession = domain.DefaultSessionType
	}
	startTime := strings.TrimSpace(in.StartTime)
	if startTime == "" {
		startTime = domain.DefaultSessionStartTime
	} else if _, err := time.Parse(timeOfDayLayout, startTime); err != nil {
		return nil, fmt.Errorf("startTime must be HH:MM: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	parsed, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	if parsed != nil {
		date = *parsed
	}

	return domain.NewSession(conferenceID, name, speaker, typeOfSession, startTime,
		nonEmptyOr(in.Highlights, domain.DefaultSessionHighlights), in.DurationMinutes, date, now), nil
}

func (s *sessionService) ListByConference(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.conferenceRepo.GetByID(ctx, conferenceID); err != nil {
		return nil, err
	}
	return s.sessionRepo.ListByConference(ctx, conferenceID)
}

func (s *sessionService) ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.conferenceRepo.GetByID(ctx, conferenceID); err != nil {
		return nil, err
	}
	return s.sessionRepo.ListByConferenceAndType(ctx, conferenceID, strings.TrimSpace(typeOfSession))
}

func (s *sessionService) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.sessionRepo.ListBySpeaker(ctx, strings.TrimSpace(speaker))
}
