package suggest

import (
	"slices"
	"strings"
)

// safetyRating classifies how an exercise relates to the user's injuries.
type safetyRating int

const (
	safetySafe safetyRating = iota
	safetyCaution
	safetyAvoid
)

// regionMuscles maps a body region to the muscle groups loaded when it moves.
var regionMuscles = map[string][]MuscleGroup{
	"shoulder":   {MuscleShoulders, MuscleChest},
	"elbow":      {MuscleBiceps, MuscleTriceps, MuscleChest},
	"wrist":      {MuscleChest, MuscleShoulders, MuscleTriceps, MuscleBiceps, MuscleBack},
	"lower_back": {MuscleBack, MuscleHamstrings, MuscleGlutes},
	"hip":        {MuscleGlutes, MuscleQuads, MuscleHamstrings},
	"knee":       {MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves},
	"ankle":      {MuscleCalves, MuscleQuads},
	"neck":       {MuscleShoulders, MuscleBack},
}

// regionPatterns maps a body region to movement patterns that stress it
// regardless of which muscle is primary.
var regionPatterns = map[string][]string{
	"lower_back": {"hinge", "squat"},
	"knee":       {"squat", "lunge"},
	"shoulder":   {"push"},
}

// normalizeRegion canonicalizes a body-region name from user input.
func normalizeRegion(region string) string {
	region = strings.ToLower(strings.TrimSpace(region))
	return strings.ReplaceAll(region, " ", "_")
}

// classifySafety rates an exercise against a single injury.
func classifySafety(exercise Exercise, injury Injury) safetyRating {
	region := normalizeRegion(injury.BodyRegion)

	affected := regionMuscles[region]
	primaryAffected := slices.Contains(affected, exercise.PrimaryMuscle)
	secondaryAffected := false
	for _, muscle := range exercise.SecondaryMuscles {
		if slices.Contains(affected, muscle) {
			secondaryAffected = true
			break
		}
	}

	patternAffected := false
	for _, pattern := range regionPatterns[region] {
		if strings.EqualFold(exercise.MovementPattern, pattern) {
			patternAffected = true
			break
		}
	}

	if !primaryAffected && !secondaryAffected && !patternAffected {
		return safetySafe
	}

	switch injury.Severity {
	case SeverityMild:
		return safetyCaution
	case SeverityModerate:
		if primaryAffected {
			return safetyAvoid
		}
		return safetyCaution
	case SeveritySevere:
		if primaryAffected || patternAffected {
			return safetyAvoid
		}
		return safetyCaution
	default:
		return safetyCaution
	}
}

// rateExercise takes the worst rating across all active injuries.
func rateExercise(exercise Exercise, injuries []Injury) safetyRating {
	rating := safetySafe
	for _, injury := range injuries {
		if r := classifySafety(exercise, injury); r > rating {
			rating = r
		}
	}
	return rating
}
