package suggest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkoskela/liftapp/internal/contexthelpers"
	"github.com/mkoskela/liftapp/internal/sqlite"
)

// sqliteProfileRepository stores the user's training profile.
type sqliteProfileRepository struct {
	baseRepository
}

func newSQLiteProfileRepository(db *sqlite.Database) *sqliteProfileRepository {
	return &sqliteProfileRepository{
		baseRepository: newBaseRepository(db),
	}
}

// Get retrieves the user's profile, or ErrNotFound when none is configured.
func (r *sqliteProfileRepository) Get(ctx context.Context) (Profile, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var profile Profile
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT goal, session_minutes, gym_location_id
		FROM profiles
		WHERE user_id = ?`, userID).Scan(
		&profile.Goal,
		&profile.SessionMinutes,
		&profile.GymLocationID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, fmt.Errorf("profile for user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("query profile: %w", err)
	}
	return profile, nil
}

// Set upserts the user's profile.
func (r *sqliteProfileRepository) Set(ctx context.Context, profile Profile) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO profiles (user_id, goal, session_minutes, gym_location_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			goal = excluded.goal,
			session_minutes = excluded.session_minutes,
			gym_location_id = excluded.gym_location_id`,
		userID, profile.Goal, profile.SessionMinutes, profile.GymLocationID)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
