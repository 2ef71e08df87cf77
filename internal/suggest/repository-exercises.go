package suggest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkoskela/liftapp/internal/sqlite"
)

// sqliteExerciseRepository reads and writes the exercise catalog.
type sqliteExerciseRepository struct {
	baseRepository
}

func newSQLiteExerciseRepository(db *sqlite.Database) *sqliteExerciseRepository {
	return &sqliteExerciseRepository{
		baseRepository: newBaseRepository(db),
	}
}

// Get retrieves a single exercise by ID.
func (r *sqliteExerciseRepository) Get(ctx context.Context, id int) (Exercise, error) {
	var exercise Exercise

	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, primary_muscle, mechanic, movement_pattern,
		       hypertrophy_tier, is_bodyweight, description_markdown
		FROM exercises
		WHERE id = ?`, id).Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.PrimaryMuscle,
		&exercise.Mechanic,
		&exercise.MovementPattern,
		&exercise.Tier,
		&exercise.Bodyweight,
		&exercise.DescriptionMarkdown,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, fmt.Errorf("exercise %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Exercise{}, fmt.Errorf("query exercise: %w", err)
	}

	if err = r.fetchDetails(ctx, &exercise); err != nil {
		return Exercise{}, fmt.Errorf("fetch details for exercise %d: %w", exercise.ID, err)
	}

	return exercise, nil
}

// List returns the whole catalog with secondary muscles and equipment loaded.
func (r *sqliteExerciseRepository) List(ctx context.Context) (_ []Exercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, primary_muscle, mechanic, movement_pattern,
		       hypertrophy_tier, is_bodyweight, description_markdown
		FROM exercises
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []Exercise
	for rows.Next() {
		var exercise Exercise
		if err = rows.Scan(
			&exercise.ID,
			&exercise.Name,
			&exercise.PrimaryMuscle,
			&exercise.Mechanic,
			&exercise.MovementPattern,
			&exercise.Tier,
			&exercise.Bodyweight,
			&exercise.DescriptionMarkdown,
		); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, exercise)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range exercises {
		if err = r.fetchDetails(ctx, &exercises[i]); err != nil {
			return nil, fmt.Errorf("fetch details for exercise %d: %w", exercises[i].ID, err)
		}
	}

	return exercises, nil
}

// fetchDetails loads the secondary muscles and equipment requirements.
func (r *sqliteExerciseRepository) fetchDetails(ctx context.Context, exercise *Exercise) (err error) {
	muscleRows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT muscle_group_name
		FROM exercise_secondary_muscles
		WHERE exercise_id = ?
		ORDER BY muscle_group_name`, exercise.ID)
	if err != nil {
		return fmt.Errorf("query secondary muscles: %w", err)
	}
	defer func() {
		if closeErr := muscleRows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close muscle rows: %w", closeErr))
		}
	}()

	exercise.SecondaryMuscles = nil
	for muscleRows.Next() {
		var muscle MuscleGroup
		if err = muscleRows.Scan(&muscle); err != nil {
			return fmt.Errorf("scan secondary muscle: %w", err)
		}
		exercise.SecondaryMuscles = append(exercise.SecondaryMuscles, muscle)
	}
	if err = muscleRows.Err(); err != nil {
		return fmt.Errorf("muscle rows error: %w", err)
	}

	equipmentRows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT equipment_name
		FROM exercise_equipment
		WHERE exercise_id = ?
		ORDER BY equipment_name`, exercise.ID)
	if err != nil {
		return fmt.Errorf("query equipment: %w", err)
	}
	defer func() {
		if closeErr := equipmentRows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close equipment rows: %w", closeErr))
		}
	}()

	exercise.Equipment = nil
	for equipmentRows.Next() {
		var equipment string
		if err = equipmentRows.Scan(&equipment); err != nil {
			return fmt.Errorf("scan equipment: %w", err)
		}
		exercise.Equipment = append(exercise.Equipment, equipment)
	}
	if err = equipmentRows.Err(); err != nil {
		return fmt.Errorf("equipment rows error: %w", err)
	}

	return nil
}

// Create inserts a new exercise and its relations, returning the stored copy.
func (r *sqliteExerciseRepository) Create(ctx context.Context, exercise Exercise) (Exercise, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO exercises (
			name, primary_muscle, mechanic, movement_pattern,
			hypertrophy_tier, is_bodyweight, description_markdown
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		exercise.Name,
		exercise.PrimaryMuscle,
		exercise.Mechanic,
		exercise.MovementPattern,
		exercise.Tier,
		exercise.Bodyweight,
		exercise.DescriptionMarkdown,
	)
	if err != nil {
		return Exercise{}, fmt.Errorf("insert exercise: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Exercise{}, fmt.Errorf("last insert id: %w", err)
	}
	exercise.ID = int(id)

	for _, muscle := range exercise.SecondaryMuscles {
		if _, err = r.db.ReadWrite.ExecContext(ctx, `
			INSERT INTO exercise_secondary_muscles (exercise_id, muscle_group_name)
			VALUES (?, ?)
			ON CONFLICT DO NOTHING`, exercise.ID, muscle); err != nil {
			return Exercise{}, fmt.Errorf("insert secondary muscle: %w", err)
		}
	}
	for _, equipment := range exercise.Equipment {
		if _, err = r.db.ReadWrite.ExecContext(ctx, `
			INSERT INTO exercise_equipment (exercise_id, equipment_name)
			VALUES (?, ?)
			ON CONFLICT DO NOTHING`, exercise.ID, equipment); err != nil {
			return Exercise{}, fmt.Errorf("insert equipment: %w", err)
		}
	}

	return exercise, nil
}
