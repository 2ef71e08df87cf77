package suggest

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// estimateTotalMinutes sums per-exercise time estimates over the selection in
// order, assigning the warmup allowance to the first compound exercise seen
// for each muscle group.
func estimateTotalMinutes(selection []ScoredExercise, goal Goal) int {
	warmedUp := make(map[MuscleGroup]bool)
	totalSeconds := 0
	for _, candidate := range selection {
		exercise := candidate.Exercise
		withWarmup := false
		if exercise.Mechanic == MechanicCompound && !warmedUp[exercise.PrimaryMuscle] {
			withWarmup = true
			warmedUp[exercise.PrimaryMuscle] = true
		}
		totalSeconds += exerciseSeconds(goal, exercise.Mechanic, withWarmup)
	}
	return int(math.Round(float64(totalSeconds) / secondsPerMinute))
}

// muscleNeedSentence describes why an exercise's primary muscle was targeted.
func muscleNeedSentence(muscle MuscleGroup, record trainingRecord) string {
	rec := record[muscle]

	var sentence string
	switch {
	case rec.count == 0:
		sentence = fmt.Sprintf("You haven't trained %s in the last week.", muscle)
	case rec.count < 2:
		sentence = fmt.Sprintf("Your %s has only seen light work this week.", muscle)
	default:
		sentence = fmt.Sprintf("Your %s could use more volume this week.", muscle)
	}

	if antagonist, ok := antagonists[muscle]; ok {
		if rec.count == 0 && record[antagonist].count > 0 {
			sentence += fmt.Sprintf(" Training %s balances out your recent %s work.", muscle, antagonist)
		}
	}
	return sentence
}

// recoverySentence notes recovery time when the muscle has rested long enough
// to mention it. Empty when the muscle was never trained or trained recently.
func recoverySentence(muscle MuscleGroup, record trainingRecord, now time.Time) string {
	lastTrained := record[muscle].lastTrained
	if lastTrained.IsZero() {
		return ""
	}
	days := daysBetween(lastTrained, now)
	if days < minRecoveryDays {
		return ""
	}
	return fmt.Sprintf("Your %s has had %d days to recover.", muscle, days)
}

// explainExercise builds the full human-readable explanation for one selected
// exercise: muscle need, recovery, scoring reasons, frequency, and recency.
func explainExercise(
	candidate ScoredExercise,
	record trainingRecord,
	usage map[int]int,
	recent map[int]bool,
	now time.Time,
) ExerciseExplanation {
	exercise := candidate.Exercise

	parts := []string{muscleNeedSentence(exercise.PrimaryMuscle, record)}
	if sentence := recoverySentence(exercise.PrimaryMuscle, record, now); sentence != "" {
		parts = append(parts, sentence)
	}
	parts = append(parts, strings.Join(candidate.Reasons, ". ")+".")

	if uses := usage[exercise.ID]; uses > 0 {
		parts = append(parts, fmt.Sprintf("You've done this %d times in the last 90 days.", uses))
	} else {
		parts = append(parts, "This would be a new movement for you.")
	}
	if recent[exercise.ID] {
		parts = append(parts, "You did this within the last few days.")
	}

	return ExerciseExplanation{
		ExerciseID: exercise.ID,
		Name:       exercise.Name,
		Text:       strings.Join(parts, " "),
	}
}

// joinMuscles renders a muscle list as natural language, e.g. "back, chest
// and shoulders".
func joinMuscles(muscles []MuscleGroup) string {
	names := make([]string, len(muscles))
	for i, muscle := range muscles {
		names[i] = string(muscle)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// buildSummary renders the top-level suggestion summary.
func buildSummary(
	selection []ScoredExercise,
	muscles []MuscleGroup,
	durationMinutes int,
	estimatedMinutes int,
) string {
	return fmt.Sprintf(
		"%d exercises targeting %s for your %d-minute session, estimated at %d minutes.",
		len(selection), joinMuscles(muscles), durationMinutes, estimatedMinutes,
	)
}
