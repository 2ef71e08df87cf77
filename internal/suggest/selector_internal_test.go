package suggest

import "testing"

func scoredCompound(id int, pattern string, score int) ScoredExercise {
	return ScoredExercise{
		Exercise: testExercise(id, "compound", MuscleChest, nil, MechanicCompound, pattern, TierA, "barbell"),
		Score:    score,
		Reasons:  nil,
		Caution:  false,
	}
}

func scoredIsolation(id int, pattern string, score int) ScoredExercise {
	return ScoredExercise{
		Exercise: testExercise(id, "isolation", MuscleChest, nil, MechanicIsolation, pattern, TierB, "cable"),
		Score:    score,
		Reasons:  nil,
		Caution:  false,
	}
}

func selectedIDs(selection []ScoredExercise) []int {
	ids := make([]int, len(selection))
	for i, candidate := range selection {
		ids[i] = candidate.Exercise.ID
	}
	return ids
}

func TestSelectExercises(t *testing.T) {
	t.Run("prefers unselected patterns over higher score", func(t *testing.T) {
		compounds := []ScoredExercise{
			scoredCompound(1, "push", 80),
			scoredCompound(2, "push", 70),
			scoredCompound(3, "pull", 60),
		}
		budget := exerciseBudget{Compounds: 2, Isolations: 0, Total: 2}

		got := selectedIDs(selectExercises(compounds, nil, budget))
		want := []int{1, 3}
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("selection = %v, want %v", got, want)
		}
	})

	t.Run("allows repeated pattern when nothing else remains", func(t *testing.T) {
		compounds := []ScoredExercise{
			scoredCompound(1, "push", 80),
			scoredCompound(2, "push", 70),
		}
		budget := exerciseBudget{Compounds: 2, Isolations: 0, Total: 2}

		got := selectedIDs(selectExercises(compounds, nil, budget))
		if len(got) != 2 {
			t.Fatalf("selected %d exercises, want 2", len(got))
		}
	})

	t.Run("compounds come before isolations", func(t *testing.T) {
		compounds := []ScoredExercise{scoredCompound(1, "push", 50)}
		isolations := []ScoredExercise{scoredIsolation(2, "fly", 90)}
		budget := exerciseBudget{Compounds: 1, Isolations: 1, Total: 2}

		got := selectedIDs(selectExercises(compounds, isolations, budget))
		want := []int{1, 2}
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("selection = %v, want %v", got, want)
		}
	})

	t.Run("overall total caps the selection", func(t *testing.T) {
		compounds := []ScoredExercise{
			scoredCompound(1, "push", 80),
			scoredCompound(2, "pull", 70),
		}
		isolations := []ScoredExercise{
			scoredIsolation(3, "curl", 60),
			scoredIsolation(4, "fly", 50),
		}
		budget := exerciseBudget{Compounds: 2, Isolations: 2, Total: 3}

		if got := selectExercises(compounds, isolations, budget); len(got) != 3 {
			t.Errorf("selected %d exercises, want 3", len(got))
		}
	})

	t.Run("quota larger than pool does not panic", func(t *testing.T) {
		compounds := []ScoredExercise{scoredCompound(1, "push", 80)}
		budget := exerciseBudget{Compounds: 3, Isolations: 2, Total: 5}

		if got := selectExercises(compounds, nil, budget); len(got) != 1 {
			t.Errorf("selected %d exercises, want 1", len(got))
		}
	})
}
