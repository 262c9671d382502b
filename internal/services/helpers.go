package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

const (
	dateLayout      = "2006-01-02"
	timeOfDayLayout = "15:04"
)

// withTimeout bounds ctx by d; a zero d leaves the caller's deadline in place.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// loadOrCreateProfile returns the caller's profile, creating it on first use.
// Call it with a transaction context so creation and the following mutation
// commit together.
func loadOrCreateProfile(ctx context.Context, repo domain.ProfileRepository, id domain.Identity) (*domain.Profile, error) {
	if id.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	p, err := repo.GetByUserID(ctx, id.UserID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile %s: %w", id.UserID, err)
	}
	p = domain.NewProfile(id, time.Now())
	if err := repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile %s: %w", id.UserID, err)
	}
	return p, nil
}

// withOrganizers attaches organizer display names, looked up with one multi-get.
func withOrganizers(ctx context.Context, repo domain.ProfileRepository, conferences []*domain.Conference) ([]*domain.ConferenceWithOrganizer, error) {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, c := range conferences {
		if !seen[c.OrganizerID] {
			seen[c.OrganizerID] = true
			ids = append(ids, c.OrganizerID)
		}
	}
	names := make(map[string]string, len(ids))
	if len(ids) > 0 {
		profiles, err := repo.GetByUserIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("get organizer profiles: %w", err)
		}
		for _, p := range profiles {
			names[p.UserID] = p.DisplayName
		}
	}
	out := make([]*domain.ConferenceWithOrganizer, 0, len(conferences))
	for _, c := range conferences {
		out = append(out, &domain.ConferenceWithOrganizer{Conference: c, OrganizerDisplayName: names[c.OrganizerID]})
	}
	return out, nil
}

// parseDate parses YYYY-MM-DD; an empty string yields nil.
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD: %w", field, domain.ErrInvalidInput)
	}
	return &t, nil
}

func nonEmptyOr(values []string, fallback []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return append([]string{}, fallback...)
	}
	return out
}
