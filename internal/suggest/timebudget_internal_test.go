package suggest

import "testing"

func TestRestSeconds(t *testing.T) {
	tests := []struct {
		goal     Goal
		mechanic Mechanic
		want     int
	}{
		{GoalCut, MechanicCompound, 120},
		{GoalCut, MechanicIsolation, 60},
		{GoalBulk, MechanicCompound, 180},
		{GoalBulk, MechanicIsolation, 90},
		{GoalMaintain, MechanicCompound, 150},
		{GoalMaintain, MechanicIsolation, 75},
	}
	for _, tt := range tests {
		if got := restSeconds(tt.goal, tt.mechanic); got != tt.want {
			t.Errorf("restSeconds(%s, %s) = %d, want %d", tt.goal, tt.mechanic, got, tt.want)
		}
	}
}

func TestExerciseSeconds(t *testing.T) {
	// Three 50s sets with 150s rest between, 240s warmup, 60s transition.
	if got := exerciseSeconds(GoalMaintain, MechanicCompound, true); got != 750 {
		t.Errorf("compound with warmup = %ds, want 750", got)
	}
	if got := exerciseSeconds(GoalMaintain, MechanicCompound, false); got != 510 {
		t.Errorf("compound without warmup = %ds, want 510", got)
	}
	// Isolation never gets the warmup allowance.
	if got := exerciseSeconds(GoalMaintain, MechanicIsolation, true); got != 315 {
		t.Errorf("isolation = %ds, want 315", got)
	}
}

func TestBudgetFor(t *testing.T) {
	t.Run("short cut session still fits one compound", func(t *testing.T) {
		budget := budgetFor(20, GoalCut)
		if budget.Total < 1 {
			t.Errorf("total = %d, want at least 1", budget.Total)
		}
		if budget.Compounds < 1 {
			t.Errorf("compounds = %d, want at least 1", budget.Compounds)
		}
	})

	t.Run("compounds take the larger half", func(t *testing.T) {
		budget := budgetFor(60, GoalMaintain)
		if budget.Compounds < budget.Isolations {
			t.Errorf("compounds %d < isolations %d", budget.Compounds, budget.Isolations)
		}
		if budget.Total != budget.Compounds+budget.Isolations {
			t.Errorf("total %d != compounds %d + isolations %d",
				budget.Total, budget.Compounds, budget.Isolations)
		}
	})

	t.Run("longer sessions fit more exercises", func(t *testing.T) {
		if short, long := budgetFor(30, GoalMaintain).Total, budgetFor(90, GoalMaintain).Total; short >= long {
			t.Errorf("30min total %d >= 90min total %d", short, long)
		}
	})
}

func TestRecommendedRange(t *testing.T) {
	low, high := recommendedRange(60)
	if low < 1 {
		t.Errorf("low = %d, want at least 1", low)
	}
	if high != low+2 {
		t.Errorf("range [%d, %d], want a spread of 2", low, high)
	}
}
