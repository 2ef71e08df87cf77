package suggest

import (
	"testing"
	"time"
)

func TestClassifySafety(t *testing.T) {
	squat := testExercise(1, "Barbell Back Squat", MuscleQuads, []MuscleGroup{MuscleGlutes}, MechanicCompound, "squat", TierS, "barbell")
	benchPress := testExercise(2, "Barbell Bench Press", MuscleChest, []MuscleGroup{MuscleTriceps}, MechanicCompound, "push", TierS, "barbell")
	curl := testExercise(3, "Barbell Curl", MuscleBiceps, nil, MechanicIsolation, "curl", TierA, "barbell")

	injury := func(region string, severity Severity) Injury {
		return Injury{
			ID:         1,
			BodyRegion: region,
			Severity:   severity,
			Side:       "",
			Active:     true,
			OnsetDate:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	tests := []struct {
		name     string
		exercise Exercise
		injury   Injury
		want     safetyRating
	}{
		{
			name:     "unrelated region is safe",
			exercise: curl,
			injury:   injury("knee", SeveritySevere),
			want:     safetySafe,
		},
		{
			name:     "mild injury gives caution",
			exercise: squat,
			injury:   injury("knee", SeverityMild),
			want:     safetyCaution,
		},
		{
			name:     "moderate injury avoids primary-muscle load",
			exercise: squat,
			injury:   injury("knee", SeverityModerate),
			want:     safetyAvoid,
		},
		{
			name:     "moderate injury allows secondary load with caution",
			exercise: testExercise(5, "Barbell Row", MuscleBack, []MuscleGroup{MuscleBiceps}, MechanicCompound, "pull", TierS, "barbell"),
			injury:   injury("elbow", SeverityModerate),
			want:     safetyCaution,
		},
		{
			name:     "severe injury avoids affected movement pattern",
			exercise: benchPress,
			injury:   injury("shoulder", SeveritySevere),
			want:     safetyAvoid,
		},
		{
			name:     "severe lower back avoids hinge pattern",
			exercise: testExercise(4, "Romanian Deadlift", MuscleHamstrings, nil, MechanicCompound, "hinge", TierS, "barbell"),
			injury:   injury("lower back", SeveritySevere),
			want:     safetyAvoid,
		},
		{
			name:     "region name tolerates spaces",
			exercise: squat,
			injury:   injury("Lower Back", SeverityMild),
			want:     safetyCaution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifySafety(tt.exercise, tt.injury); got != tt.want {
				t.Errorf("classifySafety(%s, %s %s) = %v, want %v",
					tt.exercise.Name, tt.injury.Severity, tt.injury.BodyRegion, got, tt.want)
			}
		})
	}
}

func TestRateExercise(t *testing.T) {
	squat := testExercise(1, "Barbell Back Squat", MuscleQuads, []MuscleGroup{MuscleGlutes}, MechanicCompound, "squat", TierS, "barbell")

	injuries := []Injury{
		{ID: 1, BodyRegion: "knee", Severity: SeverityMild, Active: true},
		{ID: 2, BodyRegion: "knee", Severity: SeverityModerate, Active: true},
	}
	if got := rateExercise(squat, injuries); got != safetyAvoid {
		t.Errorf("rateExercise should take the worst rating, got %v", got)
	}

	if got := rateExercise(squat, nil); got != safetySafe {
		t.Errorf("rateExercise with no injuries = %v, want safe", got)
	}
}
