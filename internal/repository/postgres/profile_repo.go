package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

const profileColumns = `user_id, display_name, main_email, tee_shirt_size, registered_conference_ids, wishlist_session_ids, created_at, updated_at`

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	var registered, wishlist pq.StringArray
	err := row.Scan(&p.UserID, &p.DisplayName, &p.MainEmail, &p.TeeShirtSize, &registered, &wishlist, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.RegisteredConferenceIDs = append([]string{}, registered...)
	p.WishlistSessionIDs = append([]string{}, wishlist...)
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, display_name, main_email, tee_shirt_size, registered_conference_ids, wishlist_session_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := conn(ctx, r.DB).ExecContext(ctx, query,
		p.UserID, p.DisplayName, p.MainEmail, p.TeeShirtSize,
		pq.Array(p.RegisteredConferenceIDs), pq.Array(p.WishlistSessionIDs), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("profile %s: %w", p.UserID, domain.ErrConflict)
	}
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	p, err := scanProfile(conn(ctx, r.DB).QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]*domain.Profile, error) {
	if len(userIDs) == 0 {
		return []*domain.Profile{}, nil
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = ANY($1)`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	profiles := make([]*domain.Profile, 0, len(userIDs))
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, tee_shirt_size = $2, registered_conference_ids = $3, wishlist_session_ids = $4, updated_at = $5
		WHERE user_id = $6
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query,
		p.DisplayName, p.TeeShirtSize, pq.Array(p.RegisteredConferenceIDs), pq.Array(p.WishlistSessionIDs), p.UpdatedAt, p.UserID,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("profile %s: %w", p.UserID, domain.ErrNotFound)
	}
	return nil
}
