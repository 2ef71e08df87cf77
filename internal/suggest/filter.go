package suggest

// filterCandidates narrows the exercise pool to those the user can and should
// perform. Filters apply in order: preference exclusions, equipment
// availability, then injury safety. The returned slice keeps safe exercises
// before caution-rated ones; the caution set feeds the scoring penalty.
func filterCandidates(
	pool []Exercise,
	preferences map[int]PreferenceStatus,
	available availabilitySet,
	injuries []Injury,
) (candidates []Exercise, caution map[int]bool) {
	caution = make(map[int]bool)

	var safe, cautioned []Exercise
	for _, exercise := range pool {
		switch preferences[exercise.ID] {
		case PreferenceArchived, PreferenceDoNotSuggest:
			continue
		}

		if !available.satisfies(exercise) {
			continue
		}

		switch rateExercise(exercise, injuries) {
		case safetySafe:
			safe = append(safe, exercise)
		case safetyCaution:
			caution[exercise.ID] = true
			cautioned = append(cautioned, exercise)
		case safetyAvoid:
			continue
		}
	}

	candidates = make([]Exercise, 0, len(safe)+len(cautioned))
	candidates = append(candidates, safe...)
	candidates = append(candidates, cautioned...)
	return candidates, caution
}
