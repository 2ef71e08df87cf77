package suggest

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkoskela/liftapp/internal/contexthelpers"
	"github.com/mkoskela/liftapp/internal/sqlite"
)

// sqlitePreferenceRepository stores per-exercise preference statuses for the
// authenticated user.
type sqlitePreferenceRepository struct {
	baseRepository
}

func newSQLitePreferenceRepository(db *sqlite.Database) *sqlitePreferenceRepository {
	return &sqlitePreferenceRepository{
		baseRepository: newBaseRepository(db),
	}
}

// Map returns the user's non-default preference statuses keyed by exercise ID.
// Exercises absent from the map are implicitly normal.
func (r *sqlitePreferenceRepository) Map(ctx context.Context) (_ map[int]PreferenceStatus, err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, status
		FROM exercise_preferences
		WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query exercise preferences: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	preferences := make(map[int]PreferenceStatus)
	for rows.Next() {
		var (
			exerciseID int
			status     PreferenceStatus
		)
		if err = rows.Scan(&exerciseID, &status); err != nil {
			return nil, fmt.Errorf("scan exercise preference: %w", err)
		}
		preferences[exerciseID] = status
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return preferences, nil
}

// Set upserts the preference status for one exercise.
func (r *sqlitePreferenceRepository) Set(ctx context.Context, exerciseID int, status PreferenceStatus) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO exercise_preferences (user_id, exercise_id, status)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, exercise_id) DO UPDATE SET
			status = excluded.status`,
		userID, exerciseID, status)
	if err != nil {
		return fmt.Errorf("save exercise preference: %w", err)
	}
	return nil
}
