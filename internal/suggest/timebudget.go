package suggest

import "math"

// Timing assumptions for per-exercise duration estimates, in seconds.
const (
	compoundSetSeconds  = 50
	isolationSetSeconds = 35
	estimateSets        = 3
	warmupSeconds       = 240
	transitionSeconds   = 60
	secondsPerMinute    = 60
)

// restSeconds returns the rest period between working sets for an exercise
// mechanic under the given training goal.
func restSeconds(goal Goal, mechanic Mechanic) int {
	switch goal {
	case GoalCut:
		if mechanic == MechanicCompound {
			return 120
		}
		return 60
	case GoalBulk:
		if mechanic == MechanicCompound {
			return 180
		}
		return 90
	default:
		if mechanic == MechanicCompound {
			return 150
		}
		return 75
	}
}

// exerciseSeconds estimates the time one exercise takes: three working sets
// with rest between them, an optional warmup allowance, and a flat transition
// cost. Only compound exercises ever get the warmup allowance.
func exerciseSeconds(goal Goal, mechanic Mechanic, withWarmup bool) int {
	setDuration := isolationSetSeconds
	if mechanic == MechanicCompound {
		setDuration = compoundSetSeconds
	}
	rest := restSeconds(goal, mechanic)

	total := (setDuration+rest)*estimateSets - rest
	if withWarmup && mechanic == MechanicCompound {
		total += warmupSeconds
	}
	return total + transitionSeconds
}

// exerciseMinutes converts an exercise estimate to fractional minutes.
func exerciseMinutes(goal Goal, mechanic Mechanic, withWarmup bool) float64 {
	return float64(exerciseSeconds(goal, mechanic, withWarmup)) / secondsPerMinute
}

// exerciseBudget is how many exercises fit into a session.
type exerciseBudget struct {
	Compounds  int
	Isolations int
	Total      int
}

// budgetFor computes the exercise budget for a session duration and goal.
// Compound time blends the with-warmup and without-warmup estimates 1:2 since
// only the first compound per muscle group warms up; compounds and isolations
// then blend evenly.
func budgetFor(durationMinutes int, goal Goal) exerciseBudget {
	compoundWithWarmup := exerciseMinutes(goal, MechanicCompound, true)
	compoundPlain := exerciseMinutes(goal, MechanicCompound, false)
	averageCompound := (compoundWithWarmup + 2*compoundPlain) / 3
	averageIsolation := exerciseMinutes(goal, MechanicIsolation, false)
	average := (averageCompound + averageIsolation) / 2

	total := int(math.Floor(float64(durationMinutes) / average))
	compounds := max(int(math.Ceil(float64(total)/2)), 1)
	isolations := max(total-compounds, 0)

	return exerciseBudget{
		Compounds:  compounds,
		Isolations: isolations,
		// The compound floor can lift the total for very short sessions.
		Total: compounds + isolations,
	}
}

// recommendedRange reports the exercise-count range shown to the user,
// computed against the neutral maintain goal.
func recommendedRange(durationMinutes int) (low, high int) {
	total := budgetFor(durationMinutes, GoalMaintain).Total
	return max(total-1, 1), total + 1
}
