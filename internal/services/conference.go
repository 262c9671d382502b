package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type conferenceService struct {
	txm            domain.TxManager
	conferenceRepo domain.ConferenceRepository
	profileRepo    domain.ProfileRepository
	emailService   domain.EmailService
	tasks          domain.TaskQueue
	contextTimeout time.Duration
}

func NewConferenceService(txm domain.TxManager,
	conferenceRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	emailService domain.EmailService,
	tasks domain.TaskQueue,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		txm:            txm,
		conferenceRepo: conferenceRepo,
		profileRepo:    profileRepo,
		emailService:   emailService,
		tasks:          tasks,
		contextTimeout: timeout,
	}
}

func (s *conferenceService) CreateConference(ctx context.Context, id domain.Identity, in domain.ConferenceInput) (*domain.Conference, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("conference name is required: %w", domain.ErrInvalidInput)
	}
	if in.MaxAttendees < 0 || in.MaxAttendees > domain.MaxAttendeesLimit {
		return nil, fmt.Errorf("maxAttendees must be between 0 and %d: %w", domain.MaxAttendeesLimit, domain.ErrInvalidInput)
	}
	startDate, err := parseDate("startDate", in.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate("endDate", in.EndDate)
	if err != nil {
		return nil, err
	}
	city := strings.TrimSpace(in.City)
	if city == "" {
		city = domain.DefaultConferenceCity
	}

	now := time.Now()
	conf := domain.NewConference(id.UserID, name, strings.TrimSpace(in.Description), city,
		nonEmptyOr(in.Topics, domain.DefaultConferenceTopics), startDate, endDate, in.MaxAttendees, now, now)

	var organizer *domain.Profile
	err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		organizer, err = loadOrCreateProfile(ctx, s.profileRepo, id)
		if err != nil {
			return err
		}
		return s.conferenceRepo.Create(ctx, conf)
	})
	if err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}

	s.enqueueCreatedEmail(id, organizer, conf)
	return conf, nil
}

func (s *conferenceService) enqueueCreatedEmail(id domain.Identity, organizer *domain.Profile, conf *domain.Conference) {
	if s.emailService == nil || s.tasks == nil || id.Email == "" {
		return
	}
	data := &domain.ConferenceCreatedEmailData{
		Email:          id.Email,
		OrganizerName:  organizer.DisplayName,
		ConferenceName: conf.Name,
		City:           conf.City,
		MaxAttendees:   conf.MaxAttendees,
		Topics:         conf.Topics,
	}
	if conf.StartDate != nil {
		data.StartDate = conf.StartDate.Format(dateLayout)
	}
	if conf.EndDate != nil {
		data.EndDate = conf.EndDate.Format(dateLayout)
	}
	s.tasks.Enqueue(domain.Task{
		Name: "conference-created-email",
		Run: func(ctx context.Context) error {
			return s.emailService.SendConferenceCreated(ctx, data)
		},
	})
}

func (s *conferenceService) UpdateConference(ctx context.Context, id domain.Identity, conferenceID string, patch domain.ConferencePatch) (*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	var updated *domain.Conference
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
		if err != nil {
			return err
		}
		if conf.OrganizerID != id.UserID {
			return fmt.Errorf("conference %s is owned by another organizer: %w", conferenceID, domain.ErrForbidden)
		}
		if err := applyConferencePatch(conf, patch); err != nil {
			return err
		}
		conf.UpdatedAt = time.Now()
		if err := s.conferenceRepo.Update(ctx, conf); err != nil {
			return fmt.Errorf("update conference %s: %w", conferenceID, err)
		}
		updated = conf
		return nil
	})
	if err != nil {
		return nil, err
	}
	out, err := withOrganizers(ctx, s.profileRepo, []*domain.Conference{updated})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func applyConferencePatch(conf *domain.Conference, patch domain.ConferencePatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return fmt.Errorf("conference name is required: %w", domain.ErrInvalidInput)
		}
		conf.Name = name
	}
	if patch.Description != nil {
		conf.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.City != nil {
		conf.City = strings.TrimSpace(*patch.City)
	}
	if patch.Topics != nil {
		conf.Topics = nonEmptyOr(patch.Topics, nil)
	}
	if patch.StartDate != nil {
		start, err := parseDate("startDate", *patch.StartDate)
		if err != nil {
			return err
		}
		conf.StartDate = start
		conf.Month = 0
		if start != nil {
			conf.Month = int(start.Month())
		}
	}
	if patch.EndDate != nil {
		end, err := parseDate("endDate", *patch.EndDate)
		if err != nil {
			return err
		}
		conf.EndDate = end
	}
	if patch.MaxAttendees != nil {
		if err := conf.Resize(*patch.MaxAttendees); err != nil {
			return fmt.Errorf("resize conference %s to %d: %w", conf.ID, *patch.MaxAttendees, err)
		}
	}
	return nil
}

func (s *conferenceService) GetConference(ctx context.Context, conferenceID string) (*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		return nil, err
	}
	out, err := withOrganizers(ctx, s.profileRepo, []*domain.Conference{conf})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (s *conferenceService) QueryConferences(ctx context.Context, filters []domain.Filter) ([]*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	q, err := query.Compile(filters)
	if err != nil {
		return nil, err
	}
	conferences, err := s.conferenceRepo.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	return withOrganizers(ctx, s.profileRepo, conferences)
}

func (s *conferenceService) ListCreated(ctx context.Context, id domain.Identity) ([]*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	conferences, err := s.conferenceRepo.ListByOrganizer(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("list conferences by organizer: %w", err)
	}
	return withOrganizers(ctx, s.profileRepo, conferences)
}
