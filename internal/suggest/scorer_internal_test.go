package suggest

import (
	"strings"
	"testing"
)

func TestScoreCandidates(t *testing.T) {
	benchPress := testExercise(1, "Barbell Bench Press", MuscleChest, []MuscleGroup{MuscleTriceps}, MechanicCompound, "push", TierS, "barbell")
	cableFly := testExercise(2, "Cable Fly", MuscleChest, nil, MechanicIsolation, "fly", TierB, "cable")

	t.Run("tier and compound bonuses", func(t *testing.T) {
		compounds, isolations := scoreCandidates(
			[]Exercise{benchPress, cableFly}, map[int]int{}, map[int]bool{}, map[int]bool{})

		if len(compounds) != 1 || len(isolations) != 1 {
			t.Fatalf("partition = %d compounds, %d isolations; want 1 and 1", len(compounds), len(isolations))
		}
		if got := compounds[0].Score; got != 65 {
			t.Errorf("S-tier compound score = %d, want 65", got)
		}
		if got := isolations[0].Score; got != 25 {
			t.Errorf("B-tier isolation score = %d, want 25", got)
		}
		if !containsReason(compounds[0].Reasons, "S-tier") {
			t.Errorf("missing tier reason in %v", compounds[0].Reasons)
		}
	})

	t.Run("frequent favorite gets a bonus", func(t *testing.T) {
		compounds, _ := scoreCandidates(
			[]Exercise{benchPress}, map[int]int{1: 4}, map[int]bool{}, map[int]bool{})

		if got := compounds[0].Score; got != 75 {
			t.Errorf("frequent favorite score = %d, want 75", got)
		}
	})

	t.Run("lesser frequency bonus", func(t *testing.T) {
		compounds, _ := scoreCandidates(
			[]Exercise{benchPress}, map[int]int{1: 2}, map[int]bool{}, map[int]bool{})

		if got := compounds[0].Score; got != 70 {
			t.Errorf("familiar movement score = %d, want 70", got)
		}
	})

	t.Run("recency cancels the frequency bonus and penalizes", func(t *testing.T) {
		compounds, _ := scoreCandidates(
			[]Exercise{benchPress}, map[int]int{1: 4}, map[int]bool{1: true}, map[int]bool{})

		if got := compounds[0].Score; got != 45 {
			t.Errorf("recently-done score = %d, want 45", got)
		}
		if !containsReason(compounds[0].Reasons, "variety penalty") {
			t.Errorf("missing recency reason in %v", compounds[0].Reasons)
		}
	})

	t.Run("caution penalty applies", func(t *testing.T) {
		compounds, _ := scoreCandidates(
			[]Exercise{benchPress}, map[int]int{}, map[int]bool{}, map[int]bool{1: true})

		if got := compounds[0].Score; got != 50 {
			t.Errorf("caution score = %d, want 50", got)
		}
		if !compounds[0].Caution {
			t.Error("caution flag not set")
		}
	})

	t.Run("sort is descending and stable", func(t *testing.T) {
		overheadPress := testExercise(3, "Overhead Press", MuscleShoulders, nil, MechanicCompound, "push", TierA, "barbell")
		inclinePress := testExercise(4, "Incline Press", MuscleChest, nil, MechanicCompound, "push", TierA, "barbell")

		compounds, _ := scoreCandidates(
			[]Exercise{overheadPress, inclinePress, benchPress}, map[int]int{}, map[int]bool{}, map[int]bool{})

		if compounds[0].Exercise.ID != 1 {
			t.Errorf("top compound = %d, want bench press", compounds[0].Exercise.ID)
		}
		// Equal scores keep input order.
		if compounds[1].Exercise.ID != 3 || compounds[2].Exercise.ID != 4 {
			t.Errorf("stable order violated: %d then %d", compounds[1].Exercise.ID, compounds[2].Exercise.ID)
		}
	})
}

func containsReason(reasons []string, substring string) bool {
	for _, reason := range reasons {
		if strings.Contains(reason, substring) {
			return true
		}
	}
	return false
}
