package suggest

import (
	"slices"
	"time"
)

// engineInput aggregates everything one suggestion run needs. It is assembled
// by the service from data-store queries; the engine itself performs no I/O.
type engineInput struct {
	Pool            []Exercise
	History         []Session
	Preferences     map[int]PreferenceStatus
	Equipment       []string
	Injuries        []Injury
	Goal            Goal
	DurationMinutes int
	Now             time.Time
}

// suggestWorkout runs the full suggestion pipeline: muscle ranking, candidate
// filtering, scoring, time budgeting, greedy selection and explanation. It is
// deterministic for identical inputs.
func suggestWorkout(in engineInput) (Suggestion, error) {
	pool := make(map[int]Exercise, len(in.Pool))
	for _, exercise := range in.Pool {
		pool[exercise.ID] = exercise
	}

	record := buildTrainingRecord(in.History, pool, in.Now)
	ranked := rankMuscles(record)
	muscles, skipped := selectMuscles(ranked, record, in.DurationMinutes, in.Now)

	musclePool := make([]Exercise, 0, len(in.Pool))
	for _, exercise := range in.Pool {
		if slices.Contains(muscles, exercise.PrimaryMuscle) {
			musclePool = append(musclePool, exercise)
		}
	}

	available := newAvailabilitySet(in.Equipment)
	candidates, caution := filterCandidates(musclePool, in.Preferences, available, in.Injuries)
	if len(candidates) == 0 {
		return Suggestion{}, ErrNoCandidates
	}

	usage := buildUsageCounts(in.History, in.Now)
	recent := buildRecentSet(in.History, in.Now)
	compounds, isolations := scoreCandidates(candidates, usage, recent, caution)

	budget := budgetFor(in.DurationMinutes, in.Goal)
	selection := selectExercises(compounds, isolations, budget)

	exerciseIDs := make([]int, len(selection))
	explanations := make([]ExerciseExplanation, len(selection))
	for i, candidate := range selection {
		exerciseIDs[i] = candidate.Exercise.ID
		explanations[i] = explainExercise(candidate, record, usage, recent, in.Now)
	}

	estimated := estimateTotalMinutes(selection, in.Goal)
	recommendedMin, recommendedMax := recommendedRange(in.DurationMinutes)

	return Suggestion{
		Muscles:          muscles,
		ExerciseIDs:      exerciseIDs,
		Summary:          buildSummary(selection, muscles, in.DurationMinutes, estimated),
		Explanations:     explanations,
		SkippedMuscles:   skipped,
		EstimatedMinutes: estimated,
		RecommendedMin:   recommendedMin,
		RecommendedMax:   recommendedMax,
	}, nil
}
