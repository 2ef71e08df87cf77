package suggest

import (
	"time"
)

// MuscleGroup identifies one of the trainable muscle groups.
type MuscleGroup string

// The fixed muscle-group set. The order doubles as the deterministic
// tie-break for muscle ranking when every other comparison is equal.
const (
	MuscleChest      MuscleGroup = "chest"
	MuscleBack       MuscleGroup = "back"
	MuscleShoulders  MuscleGroup = "shoulders"
	MuscleQuads      MuscleGroup = "quads"
	MuscleHamstrings MuscleGroup = "hamstrings"
	MuscleBiceps     MuscleGroup = "biceps"
	MuscleTriceps    MuscleGroup = "triceps"
	MuscleGlutes     MuscleGroup = "glutes"
	MuscleCalves     MuscleGroup = "calves"
	MuscleAbs        MuscleGroup = "abs"
)

// AllMuscleGroups lists every trainable muscle group in canonical order.
//
//nolint:gochecknoglobals // fixed catalog order shared across the package.
var AllMuscleGroups = []MuscleGroup{
	MuscleChest,
	MuscleBack,
	MuscleShoulders,
	MuscleQuads,
	MuscleHamstrings,
	MuscleBiceps,
	MuscleTriceps,
	MuscleGlutes,
	MuscleCalves,
	MuscleAbs,
}

// antagonists maps each muscle to its antagonist pair, both directions.
// Hand-tuned pairing used by the muscle-need comparator.
//
//nolint:gochecknoglobals // static pairing table.
var antagonists = map[MuscleGroup]MuscleGroup{
	MuscleBiceps:     MuscleTriceps,
	MuscleTriceps:    MuscleBiceps,
	MuscleChest:      MuscleBack,
	MuscleBack:       MuscleChest,
	MuscleQuads:      MuscleHamstrings,
	MuscleHamstrings: MuscleQuads,
}

// secondaryMuscleCredit is the training-count contribution of an exercise
// whose secondary muscle list contains the muscle. Primary contributes 1.0.
const secondaryMuscleCredit = 0.5

// Goal represents the user's training goal.
type Goal string

const (
	GoalBulk     Goal = "bulk"
	GoalCut      Goal = "cut"
	GoalMaintain Goal = "maintain"
)

// Mechanic classifies an exercise as multi-joint or single-joint.
type Mechanic string

const (
	MechanicCompound  Mechanic = "compound"
	MechanicIsolation Mechanic = "isolation"
)

// Tier is the ordinal hypertrophy-effectiveness rating of an exercise, S best.
type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
	TierF Tier = "F"
)

// Exercise represents a single catalog entry, e.g. Squat, Bench Press, etc.
type Exercise struct {
	ID                  int           `json:"id"`
	Name                string        `json:"name"`
	PrimaryMuscle       MuscleGroup   `json:"primary_muscle"`
	SecondaryMuscles    []MuscleGroup `json:"secondary_muscles"`
	Mechanic            Mechanic      `json:"mechanic"`
	MovementPattern     string        `json:"movement_pattern"`
	Tier                Tier          `json:"hypertrophy_tier"`
	Equipment           []string      `json:"equipment"`
	Bodyweight          bool          `json:"is_bodyweight"`
	DescriptionMarkdown string        `json:"description_markdown"`
}

// PreferenceStatus is the user's standing preference for an exercise.
// Only the non-normal statuses affect suggestions (hard exclusion).
type PreferenceStatus string

const (
	PreferenceNormal       PreferenceStatus = "normal"
	PreferenceArchived     PreferenceStatus = "archived"
	PreferenceDoNotSuggest PreferenceStatus = "do_not_suggest"
)

// Severity grades an active injury.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Injury is an active injury affecting a body region.
type Injury struct {
	ID         int       `json:"id"`
	BodyRegion string    `json:"body_region"`
	Severity   Severity  `json:"severity"`
	Side       string    `json:"side,omitempty"`
	Active     bool      `json:"active"`
	OnsetDate  time.Time `json:"onset_date,omitzero"`
}

// PlannedExercise is one exercise within a workout session with its targets.
type PlannedExercise struct {
	ExerciseID  int  `json:"exercise_id"`
	TargetSets  int  `json:"target_sets"`
	MinReps     int  `json:"min_reps"`
	MaxReps     int  `json:"max_reps"`
	RestSeconds int  `json:"rest_seconds"`
	HasWarmup   bool `json:"has_warmup"`
}

// Session represents a workout session, planned or completed.
type Session struct {
	Date        time.Time         `json:"date"`
	StartedAt   time.Time         `json:"started_at,omitzero"`
	CompletedAt time.Time         `json:"completed_at,omitzero"`
	Exercises   []PlannedExercise `json:"exercises"`
}

// Completed reports whether the session has been finished.
func (s Session) Completed() bool {
	return !s.CompletedAt.IsZero()
}

// Profile holds the per-user settings the engine needs.
type Profile struct {
	Goal           Goal `json:"goal"`
	SessionMinutes int  `json:"session_minutes"`
	GymLocationID  *int `json:"gym_location_id,omitempty"`
}

// ScoredExercise pairs an exercise with its score and the reasons behind it.
type ScoredExercise struct {
	Exercise Exercise `json:"exercise"`
	Score    int      `json:"score"`
	Reasons  []string `json:"reasons"`
	Caution  bool     `json:"caution"`
}

// SkippedMuscle explains why a high-need muscle was left out of the selection.
type SkippedMuscle struct {
	Muscle MuscleGroup `json:"muscle"`
	Reason string      `json:"reason"`
}

// ExerciseExplanation is the per-exercise reporting entry of a suggestion.
type ExerciseExplanation struct {
	ExerciseID int    `json:"exercise_id"`
	Name       string `json:"name"`
	Text       string `json:"text"`
}

// Suggestion is the engine output: the muscles and exercises to train plus
// the reporting that explains the picks.
type Suggestion struct {
	Muscles          []MuscleGroup         `json:"muscles"`
	ExerciseIDs      []int                 `json:"exercise_ids"`
	Summary          string                `json:"summary"`
	Explanations     []ExerciseExplanation `json:"explanations"`
	SkippedMuscles   []SkippedMuscle       `json:"skipped_muscles"`
	EstimatedMinutes int                   `json:"estimated_minutes"`
	RecommendedMin   int                   `json:"recommended_min_exercises"`
	RecommendedMax   int                   `json:"recommended_max_exercises"`
}
