package suggest

// selectFromPool greedily picks up to quota exercises from a score-sorted pool,
// preferring pattern variety: a candidate whose movement pattern is already
// selected is skipped only while some later candidate still offers an
// unselected pattern. selected tracks patterns across pools and remaining is
// the overall budget left.
func selectFromPool(
	pool []ScoredExercise,
	quota int,
	remaining int,
	selectedPatterns map[string]bool,
) []ScoredExercise {
	var picked []ScoredExercise
	for i, candidate := range pool {
		if len(picked) >= quota || len(picked) >= remaining {
			break
		}

		pattern := candidate.Exercise.MovementPattern
		if selectedPatterns[pattern] && hasUnselectedPattern(pool[i+1:], selectedPatterns) {
			continue
		}

		picked = append(picked, candidate)
		selectedPatterns[pattern] = true
	}
	return picked
}

// hasUnselectedPattern reports whether any candidate in rest has a movement
// pattern not yet selected.
func hasUnselectedPattern(rest []ScoredExercise, selectedPatterns map[string]bool) bool {
	for _, candidate := range rest {
		if !selectedPatterns[candidate.Exercise.MovementPattern] {
			return true
		}
	}
	return false
}

// selectExercises produces the final ordered selection: compounds first in
// selection order, then isolations, within the exercise budget.
func selectExercises(compounds, isolations []ScoredExercise, budget exerciseBudget) []ScoredExercise {
	selectedPatterns := make(map[string]bool)

	selection := selectFromPool(compounds, budget.Compounds, budget.Total, selectedPatterns)
	remaining := budget.Total - len(selection)
	selection = append(selection,
		selectFromPool(isolations, budget.Isolations, remaining, selectedPatterns)...)
	return selection
}
