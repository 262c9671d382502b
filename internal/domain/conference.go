package domain

import (
	"context"
	"math"
	"time"
)

// Default values applied to conferences created without them.
const (
	DefaultConferenceCity = "Default City"
)

// MaxAttendeesLimit is the largest capacity the INTEGER seat columns can hold.
const MaxAttendeesLimit = math.MaxInt32

// DefaultConferenceTopics is applied when a conference is created without topics.
var DefaultConferenceTopics = []string{"Default", "Topic"}

// Conference represents a bookable event owned by its organizer.
// swagger:model Conference
type Conference struct {
	ID             string     `json:"id"`
	OrganizerID    string     `json:"organizer_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Topics         []string   `json:"topics"`
	City           string     `json:"city"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Month          int        `json:"month"`
	MaxAttendees   int        `json:"max_attendees"`
	SeatsAvailable int        `json:"seats_available"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewConference returns a new Conference with seats available equal to maxAttendees
// and month derived from startDate. ID is set by the repository on create.
func NewConference(organizerID, name, description, city string, topics []string, startDate, endDate *time.Time, maxAttendees int, createdAt, updatedAt time.Time) *Conference {
	c := &Conference{
		OrganizerID:    organizerID,
		Name:           name,
		Description:    description,
		Topics:         topics,
		City:           city,
		StartDate:      startDate,
		EndDate:        endDate,
		MaxAttendees:   maxAttendees,
		SeatsAvailable: maxAttendees,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
	if startDate != nil {
		c.Month = int(startDate.Month())
	}
	return c
}

// Reserve takes one seat. It returns ErrConflict when the conference is sold out.
func (c *Conference) Reserve() error {
	if c.SeatsAvailable <= 0 {
		return ErrConflict
	}
	c.SeatsAvailable--
	return nil
}

// Release gives one seat back. It returns ErrConflict when every seat is
// already free, which means a registration exists without a held seat.
func (c *Conference) Release() error {
	if c.SeatsAvailable >= c.MaxAttendees {
		return ErrConflict
	}
	c.SeatsAvailable++
	return nil
}

// Resize changes MaxAttendees and shifts SeatsAvailable by the same delta so
// that held seats stay held. It returns ErrConflict if more seats are held
// than the new capacity allows.
func (c *Conference) Resize(maxAttendees int) error {
	if maxAttendees < 0 || maxAttendees > MaxAttendeesLimit {
		return ErrInvalidInput
	}
	seats := c.SeatsAvailable + (maxAttendees - c.MaxAttendees)
	if seats < 0 {
		return ErrConflict
	}
	c.MaxAttendees = maxAttendees
	c.SeatsAvailable = seats
	return nil
}

// ConferenceInput holds caller-supplied fields for creating a conference.
// Dates use the YYYY-MM-DD layout.
type ConferenceInput struct {
	Name         string
	Description  string
	Topics       []string
	City         string
	StartDate    string
	EndDate      string
	MaxAttendees int
}

// ConferencePatch holds the fields an organizer may change. Nil means unchanged.
type ConferencePatch struct {
	Name         *string
	Description  *string
	Topics       []string
	City         *string
	StartDate    *string
	EndDate      *string
	MaxAttendees *int
}

// ConferenceWithOrganizer bundles a conference with the organizer's display name.
type ConferenceWithOrganizer struct {
	Conference           *Conference `json:"conference"`
	OrganizerDisplayName string      `json:"organizer_display_name"`
}

// ConferenceRepository defines the interface for conference storage.
// Methods run inside the transaction carried by ctx when there is one.
type ConferenceRepository interface {
	Create(ctx context.Context, c *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	// GetByIDs returns the conferences that exist, in the order of ids.
	GetByIDs(ctx context.Context, ids []string) ([]*Conference, error)
	Update(ctx context.Context, c *Conference) error
	ListByOrganizer(ctx context.Context, organizerID string) ([]*Conference, error)
	Query(ctx context.Context, q *ConferenceQuery) ([]*Conference, error)
	// ListNamesBySeatsRange returns names of conferences with minExclusive < seats_available <= maxInclusive.
	ListNamesBySeatsRange(ctx context.Context, minExclusive, maxInclusive int) ([]string, error)
}

// ConferenceService defines organizer and attendee operations on conferences.
type ConferenceService interface {
	CreateConference(ctx context.Context, id Identity, in ConferenceInput) (*Conference, error)
	UpdateConference(ctx context.Context, id Identity, conferenceID string, patch ConferencePatch) (*ConferenceWithOrganizer, error)
	GetConference(ctx context.Context, conferenceID string) (*ConferenceWithOrganizer, error)
	QueryConferences(ctx context.Context, filters []Filter) ([]*ConferenceWithOrganizer, error)
	ListCreated(ctx context.Context, id Identity) ([]*ConferenceWithOrganizer, error)
}
