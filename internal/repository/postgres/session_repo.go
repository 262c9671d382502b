package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

const sessionColumns = `id, conference_id, name, highlights, speaker, duration_minutes, type_of_session, date, start_time, created_at`

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &SessionRepository{
		DB: db,
	}
}

func scanSession(row rowScanner) (*domain.Session, error) {
	s := &domain.Session{}
	var highlights pq.StringArray
	err := row.Scan(&s.ID, &s.ConferenceID, &s.Name, &highlights, &s.Speaker, &s.DurationMinutes, &s.TypeOfSession, &s.Date, &s.StartTime, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Highlights = append([]string{}, highlights...)
	return s, nil
}

func (r *SessionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Session, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (conference_id, name, highlights, speaker, duration_minutes, type_of_session, date, start_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return conn(ctx, r.DB).QueryRowContext(ctx, query,
		s.ConferenceID, s.Name, pq.Array(s.Highlights), s.Speaker, s.DurationMinutes, s.TypeOfSession, s.Date, s.StartTime, s.CreatedAt,
	).Scan(&s.ID)
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	s, err := scanSession(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// GetByIDs returns the sessions that exist among ids, in the order of ids.
func (r *SessionRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	if len(ids) == 0 {
		return []*domain.Session{}, nil
	}
	found, err := r.list(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ANY($1::uuid[])`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Session, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}
	ordered := make([]*domain.Session, 0, len(found))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

// ListByConference returns the conference's sessions in creation order.
func (r *SessionRepository) ListByConference(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	return r.list(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE conference_id = $1 ORDER BY seq`, conferenceID)
}

func (r *SessionRepository) ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	return r.list(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE conference_id = $1 AND type_of_session = $2 ORDER BY seq`, conferenceID, typeOfSession)
}

func (r *SessionRepository) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	return r.list(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE speaker = $1 ORDER BY name, id`, speaker)
}
