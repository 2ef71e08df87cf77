package suggest

import (
	"fmt"
	"slices"
	"time"
)

// Windows over the workout history, in days.
const (
	needWindowDays      = 7
	recencyWindowDays   = 4
	frequencyWindowDays = 90
)

// minRecoveryDays is how long a muscle should rest before it is suggested again.
const minRecoveryDays = 2

// skippedReportCount is how many runner-up muscles are checked for skip reporting.
const skippedReportCount = 3

// shortSessionMinutes is the duration at or below which only two muscle groups
// are targeted instead of three.
const shortSessionMinutes = 45

// muscleRecord accumulates training volume for one muscle group over the need window.
type muscleRecord struct {
	// count is the accumulated training count: 1.0 per primary-muscle
	// exercise, secondaryMuscleCredit per secondary appearance.
	count float64
	// lastTrained is the most recent date a completed session trained this
	// muscle as primary. Zero when the muscle was not trained in the window.
	lastTrained time.Time
}

// trainingRecord is the derived per-muscle training state, recomputed fresh
// on every suggestion run.
type trainingRecord map[MuscleGroup]muscleRecord

// normalizeDate normalizes a date to midnight UTC.
func normalizeDate(t time.Time) time.Time {
	return time.Date(
		t.Year(), t.Month(), t.Day(),
		0, 0, 0, 0, time.UTC,
	)
}

// daysBetween returns whole days from earlier to later, comparing dates only.
func daysBetween(earlier, later time.Time) int {
	const hoursPerDay = 24
	return int(normalizeDate(later).Sub(normalizeDate(earlier)).Hours() / hoursPerDay)
}

// buildTrainingRecord derives the per-muscle training record from completed
// sessions within the need window.
func buildTrainingRecord(history []Session, pool map[int]Exercise, now time.Time) trainingRecord {
	record := make(trainingRecord, len(AllMuscleGroups))
	for _, muscle := range AllMuscleGroups {
		record[muscle] = muscleRecord{count: 0, lastTrained: time.Time{}}
	}

	for _, session := range history {
		if !session.Completed() {
			continue
		}
		age := daysBetween(session.Date, now)
		if age < 0 || age > needWindowDays {
			continue
		}

		for _, planned := range session.Exercises {
			exercise, ok := pool[planned.ExerciseID]
			if !ok {
				continue
			}

			primary := record[exercise.PrimaryMuscle]
			primary.count++
			if session.Date.After(primary.lastTrained) {
				primary.lastTrained = session.Date
			}
			record[exercise.PrimaryMuscle] = primary

			for _, secondary := range exercise.SecondaryMuscles {
				rec := record[secondary]
				rec.count += secondaryMuscleCredit
				record[secondary] = rec
			}
		}
	}

	return record
}

// muscleIndex returns the position of a muscle in the canonical catalog order.
func muscleIndex(muscle MuscleGroup) int {
	return slices.Index(AllMuscleGroups, muscle)
}

// compareNeed orders two muscles by training need, most-needing first.
//
// It is a multi-key comparator: the first rule that discriminates wins.
//  1. Untrained (zero count) outranks trained. This also settles antagonist
//     balance: between registered antagonists (biceps/triceps, chest/back,
//     quads/hamstrings), the zero-count side always sorts first.
//  2. Lower accumulated count outranks higher.
//  3. Never trained as primary outranks trained; otherwise the muscle trained
//     longer ago outranks the one trained more recently.
//  4. Canonical catalog order.
func compareNeed(a, b MuscleGroup, record trainingRecord) int {
	recA, recB := record[a], record[b]
	zeroA, zeroB := recA.count == 0, recB.count == 0

	if zeroA != zeroB {
		if zeroA {
			return -1
		}
		return 1
	}

	if recA.count != recB.count {
		if recA.count < recB.count {
			return -1
		}
		return 1
	}

	neverA, neverB := recA.lastTrained.IsZero(), recB.lastTrained.IsZero()
	if neverA != neverB {
		if neverA {
			return -1
		}
		return 1
	}
	if !neverA && !recA.lastTrained.Equal(recB.lastTrained) {
		if recA.lastTrained.Before(recB.lastTrained) {
			return -1
		}
		return 1
	}

	return muscleIndex(a) - muscleIndex(b)
}

// rankMuscles returns all muscle groups ordered by training need.
func rankMuscles(record trainingRecord) []MuscleGroup {
	ranked := slices.Clone(AllMuscleGroups)
	slices.SortStableFunc(ranked, func(a, b MuscleGroup) int {
		return compareNeed(a, b, record)
	})
	return ranked
}

// muscleTargetCount decides how many muscle groups to target for a session.
func muscleTargetCount(durationMinutes int) int {
	if durationMinutes <= shortSessionMinutes {
		return 2
	}
	return 3
}

// selectMuscles picks the target muscles from the ranked list and reports
// runner-up muscles that are still inside their recovery window.
func selectMuscles(
	ranked []MuscleGroup,
	record trainingRecord,
	durationMinutes int,
	now time.Time,
) ([]MuscleGroup, []SkippedMuscle) {
	count := min(muscleTargetCount(durationMinutes), len(ranked))
	selected := slices.Clone(ranked[:count])

	var skipped []SkippedMuscle
	for _, muscle := range ranked[count:min(count+skippedReportCount, len(ranked))] {
		lastTrained := record[muscle].lastTrained
		if lastTrained.IsZero() {
			continue
		}
		days := daysBetween(lastTrained, now)
		if days > minRecoveryDays {
			continue
		}
		skipped = append(skipped, SkippedMuscle{
			Muscle: muscle,
			Reason: trainedAgoText(days),
		})
	}

	return selected, skipped
}

// trainedAgoText renders how long ago a muscle was trained.
func trainedAgoText(days int) string {
	switch days {
	case 0:
		return "trained today"
	case 1:
		return "trained 1 day ago"
	default:
		return fmt.Sprintf("trained %d days ago", days)
	}
}
