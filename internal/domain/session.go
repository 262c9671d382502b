package domain

import (
	"context"
	"time"
)

// Defaults applied to sessions created without them.
const (
	NoSpeaker               = "none"
	DefaultSessionType      = "Default Session"
	DefaultSessionStartTime = "01:00"
	DefaultSessionDuration  = 0
)

// DefaultSessionHighlights is applied when a session is created without highlights.
var DefaultSessionHighlights = []string{"Default", "Highlights"}

// Session represents a talk scheduled in a conference. ConferenceID never changes after creation.
// swagger:model Session
type Session struct {
	ID              string    `json:"id"`
	ConferenceID    string    `json:"conference_id"`
	Name            string    `json:"name"`
	Highlights      []string  `json:"highlights"`
	Speaker         string    `json:"speaker"`
	DurationMinutes int       `json:"duration_minutes"`
	TypeOfSession   string    `json:"type_of_session"`
	Date            time.Time `json:"date"`
	StartTime       string    `json:"start_time"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewSession returns a new Session with the given fields. ID is typically set by the repository on create.
func NewSession(conferenceID, name, speaker, typeOfSession, startTime string, highlights []string, durationMinutes int, date, createdAt time.Time) *Session {
	return &Session{
		ConferenceID:    conferenceID,
		Name:            name,
		Highlights:      highlights,
		Speaker:         speaker,
		DurationMinutes: durationMinutes,
		TypeOfSession:   typeOfSession,
		Date:            date,
		StartTime:       startTime,
		CreatedAt:       createdAt,
	}
}

// SessionInput holds caller-supplied fields for creating a session.
// Date uses YYYY-MM-DD and StartTime uses HH:MM.
type SessionInput struct {
	Name            string
	Highlights      []string
	Speaker         string
	DurationMinutes int
	TypeOfSession   string
	Date            string
	StartTime       string
}

// SessionRepository defines the interface for session storage.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	// GetByIDs returns the sessions that exist, in the order of ids.
	GetByIDs(ctx context.Context, ids []string) ([]*Session, error)
	// ListByConference returns the sessions of a conference in creation order.
	ListByConference(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	// ListBySpeaker returns sessions across all conferences ordered by name.
	ListBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
}

// SessionService defines the business logic for conference sessions.
type SessionService interface {
	CreateSession(ctx context.Context, id Identity, conferenceID string, in SessionInput) (*Session, error)
	ListByConference(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	ListBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
}
