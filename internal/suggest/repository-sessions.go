package suggest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkoskela/liftapp/internal/contexthelpers"
	"github.com/mkoskela/liftapp/internal/sqlite"
)

// sqliteSessionRepository reads and writes workout sessions for the
// authenticated user.
type sqliteSessionRepository struct {
	baseRepository
}

func newSQLiteSessionRepository(db *sqlite.Database) *sqliteSessionRepository {
	return &sqliteSessionRepository{
		baseRepository: newBaseRepository(db),
	}
}

// scanSession reads one workout_sessions row. Timestamps are nullable since a
// planned session has neither started nor completed.
func scanSession(row interface{ Scan(...any) error }) (Session, error) {
	var (
		session     Session
		date        string
		startedAt   sql.NullString
		completedAt sql.NullString
	)
	if err := row.Scan(&date, &startedAt, &completedAt); err != nil {
		return Session{}, err
	}

	parsed, err := time.Parse(dateFormat, date)
	if err != nil {
		return Session{}, fmt.Errorf("parse workout date %q: %w", date, err)
	}
	session.Date = parsed

	if startedAt.Valid {
		if session.StartedAt, err = time.Parse(timestampFormat, startedAt.String); err != nil {
			return Session{}, fmt.Errorf("parse started at %q: %w", startedAt.String, err)
		}
	}
	if completedAt.Valid {
		if session.CompletedAt, err = time.Parse(timestampFormat, completedAt.String); err != nil {
			return Session{}, fmt.Errorf("parse completed at %q: %w", completedAt.String, err)
		}
	}
	return session, nil
}

// Get retrieves the session for a specific date.
func (r *sqliteSessionRepository) Get(ctx context.Context, date time.Time) (Session, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT workout_date, started_at, completed_at
		FROM workout_sessions
		WHERE user_id = ? AND workout_date = ?`, userID, formatDate(date))

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("session %s: %w", formatDate(date), ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("query workout session: %w", err)
	}

	if session.Exercises, err = r.fetchExercises(ctx, userID, session.Date); err != nil {
		return Session{}, fmt.Errorf("fetch session exercises: %w", err)
	}
	return session, nil
}

// List returns the user's sessions on or after the given date, oldest first.
func (r *sqliteSessionRepository) List(ctx context.Context, since time.Time) (_ []Session, err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT workout_date, started_at, completed_at
		FROM workout_sessions
		WHERE user_id = ? AND workout_date >= ?
		ORDER BY workout_date`, userID, formatDate(since))
	if err != nil {
		return nil, fmt.Errorf("query workout sessions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var sessions []Session
	for rows.Next() {
		var session Session
		if session, err = scanSession(rows); err != nil {
			return nil, fmt.Errorf("scan workout session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range sessions {
		if sessions[i].Exercises, err = r.fetchExercises(ctx, userID, sessions[i].Date); err != nil {
			return nil, fmt.Errorf("fetch session exercises: %w", err)
		}
	}
	return sessions, nil
}

// fetchExercises loads the planned exercises for a session in position order.
func (r *sqliteSessionRepository) fetchExercises(
	ctx context.Context,
	userID int,
	date time.Time,
) (_ []PlannedExercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, target_sets, min_reps, max_reps, rest_seconds, has_warmup
		FROM session_exercises
		WHERE user_id = ? AND workout_date = ?
		ORDER BY position`, userID, formatDate(date))
	if err != nil {
		return nil, fmt.Errorf("query session exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []PlannedExercise
	for rows.Next() {
		var exercise PlannedExercise
		if err = rows.Scan(
			&exercise.ExerciseID,
			&exercise.TargetSets,
			&exercise.MinReps,
			&exercise.MaxReps,
			&exercise.RestSeconds,
			&exercise.HasWarmup,
		); err != nil {
			return nil, fmt.Errorf("scan session exercise: %w", err)
		}
		exercises = append(exercises, exercise)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return exercises, nil
}

// Create persists a planned session and its exercises. An existing session on
// the same date is replaced.
func (r *sqliteSessionRepository) Create(ctx context.Context, session Session) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)
	date := formatDate(session.Date)

	var startedAt, completedAt any
	if !session.StartedAt.IsZero() {
		startedAt = session.StartedAt.UTC().Format(timestampFormat)
	}
	if !session.CompletedAt.IsZero() {
		completedAt = session.CompletedAt.UTC().Format(timestampFormat)
	}

	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_sessions (user_id, workout_date, started_at, completed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, workout_date) DO UPDATE SET
			started_at = excluded.started_at,
			completed_at = excluded.completed_at`,
		userID, date, startedAt, completedAt); err != nil {
		return fmt.Errorf("insert workout session: %w", err)
	}

	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		DELETE FROM session_exercises
		WHERE user_id = ? AND workout_date = ?`, userID, date); err != nil {
		return fmt.Errorf("clear session exercises: %w", err)
	}

	for position, exercise := range session.Exercises {
		if _, err := r.db.ReadWrite.ExecContext(ctx, `
			INSERT INTO session_exercises (
				user_id, workout_date, exercise_id, position,
				target_sets, min_reps, max_reps, rest_seconds, has_warmup
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, date, exercise.ExerciseID, position,
			exercise.TargetSets, exercise.MinReps, exercise.MaxReps,
			exercise.RestSeconds, exercise.HasWarmup); err != nil {
			return fmt.Errorf("insert session exercise: %w", err)
		}
	}
	return nil
}

// MarkCompleted stamps a session as completed.
func (r *sqliteSessionRepository) MarkCompleted(ctx context.Context, date time.Time, at time.Time) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE workout_sessions
		SET completed_at = ?
		WHERE user_id = ? AND workout_date = ?`,
		at.UTC().Format(timestampFormat), userID, formatDate(date))
	if err != nil {
		return fmt.Errorf("mark session completed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", formatDate(date), ErrNotFound)
	}
	return nil
}

// SaveCheckin stores the pre-workout check-in payload on the session row.
func (r *sqliteSessionRepository) SaveCheckin(ctx context.Context, date time.Time, checkinJSON string) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE workout_sessions
		SET checkin_json = ?
		WHERE user_id = ? AND workout_date = ?`,
		checkinJSON, userID, formatDate(date))
	if err != nil {
		return fmt.Errorf("save checkin: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", formatDate(date), ErrNotFound)
	}
	return nil
}
