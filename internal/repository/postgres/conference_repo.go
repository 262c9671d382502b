package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

const conferenceColumns = `id, organizer_id, name, description, topics, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at`

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConference(row rowScanner) (*domain.Conference, error) {
	c := &domain.Conference{}
	var startNull, endNull sql.NullTime
	var topics pq.StringArray
	err := row.Scan(
		&c.ID, &c.OrganizerID, &c.Name, &c.Description, &topics, &c.City,
		&startNull, &endNull, &c.Month, &c.MaxAttendees, &c.SeatsAvailable, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Topics = []string(topics)
	if c.Topics == nil {
		c.Topics = []string{}
	}
	if startNull.Valid {
		c.StartDate = &startNull.Time
	}
	if endNull.Valid {
		c.EndDate = &endNull.Time
	}
	return c, nil
}

func scanConferences(rows *sql.Rows) ([]*domain.Conference, error) {
	defer rows.Close()
	conferences := make([]*domain.Conference, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		conferences = append(conferences, c)
	}
	return conferences, rows.Err()
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	query := `
		INSERT INTO conferences (organizer_id, name, description, topics, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return conn(ctx, r.DB).QueryRowContext(ctx, query,
		c.OrganizerID, c.Name, c.Description, pq.Array(c.Topics), c.City, c.StartDate, c.EndDate,
		c.Month, c.MaxAttendees, c.SeatsAvailable, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = $1`
	c, err := scanConference(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, fmt.Errorf("conference %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

// GetByIDs returns the conferences that exist among ids, in the order of ids.
func (r *conferenceRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if len(ids) == 0 {
		return []*domain.Conference{}, nil
	}
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = ANY($1::uuid[])`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	found, err := scanConferences(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Conference, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	ordered := make([]*domain.Conference, 0, len(found))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

func (r *conferenceRepository) Update(ctx context.Context, c *domain.Conference) error {
	query := `
		UPDATE conferences
		SET name = $1, description = $2, topics = $3, city = $4, start_date = $5, end_date = $6,
			month = $7, max_attendees = $8, seats_available = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query,
		c.Name, c.Description, pq.Array(c.Topics), c.City, c.StartDate, c.EndDate,
		c.Month, c.MaxAttendees, c.SeatsAvailable, c.UpdatedAt, c.ID,
	)
	if err != nil {
		if pqCode(err) == codeCheckViolation {
			return fmt.Errorf("conference %s seats: %w", c.ID, domain.ErrConflict)
		}
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("conference %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *conferenceRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE organizer_id = $1 ORDER BY name, id`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	return scanConferences(rows)
}

func (r *conferenceRepository) Query(ctx context.Context, q *domain.ConferenceQuery) ([]*domain.Conference, error) {
	where, orderBy, args, err := buildConferenceQuery(q)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + conferenceColumns + ` FROM conferences` + where + orderBy
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanConferences(rows)
}

// ListNamesBySeatsRange projects only the names of conferences whose seats
// available lie in (minExclusive, maxInclusive], ordered by name.
func (r *conferenceRepository) ListNamesBySeatsRange(ctx context.Context, minExclusive, maxInclusive int) ([]string, error) {
	query := `
		SELECT name
		FROM conferences
		WHERE seats_available > $1 AND seats_available <= $2
		ORDER BY name, id
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, minExclusive, maxInclusive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
