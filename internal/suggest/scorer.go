package suggest

import (
	"fmt"
	"slices"
	"time"
)

// Score weights for candidate ranking.
const (
	compoundBonus        = 15
	frequentBonus        = 10
	frequentLesserBonus  = 5
	recencyPenalty       = 20
	cautionPenalty       = 15
	frequentThreshold    = 3
	frequentMinThreshold = 2
)

// tierScores maps hypertrophy tiers to their base score contribution.
var tierScores = map[Tier]int{
	TierS: 50,
	TierA: 40,
	TierB: 25,
	TierC: 10,
	TierD: 0,
	TierF: 0,
}

// tierReasons maps hypertrophy tiers to explanation fragments.
var tierReasons = map[Tier]string{
	TierS: "S-tier for maximum hypertrophy",
	TierA: "A-tier, highly effective",
	TierB: "B-tier, solid choice",
	TierC: "C-tier, acceptable variety",
	TierD: "D-tier, low priority",
	TierF: "F-tier, low priority",
}

// buildUsageCounts counts appearances per exercise across completed sessions
// in the frequency window.
func buildUsageCounts(history []Session, now time.Time) map[int]int {
	counts := make(map[int]int)
	for _, session := range history {
		if !session.Completed() {
			continue
		}
		age := daysBetween(session.Date, now)
		if age < 0 || age > frequencyWindowDays {
			continue
		}
		for _, planned := range session.Exercises {
			counts[planned.ExerciseID]++
		}
	}
	return counts
}

// buildRecentSet collects exercises done in completed sessions within the
// recency window.
func buildRecentSet(history []Session, now time.Time) map[int]bool {
	recent := make(map[int]bool)
	for _, session := range history {
		if !session.Completed() {
			continue
		}
		age := daysBetween(session.Date, now)
		if age < 0 || age > recencyWindowDays {
			continue
		}
		for _, planned := range session.Exercises {
			recent[planned.ExerciseID] = true
		}
	}
	return recent
}

// scoreCandidates scores the filtered candidates additively and returns them
// sorted descending by score, partitioned by mechanic. The sort is stable so
// equal-scoring exercises keep their filter order.
func scoreCandidates(
	candidates []Exercise,
	usage map[int]int,
	recent map[int]bool,
	caution map[int]bool,
) (compounds, isolations []ScoredExercise) {
	scored := make([]ScoredExercise, 0, len(candidates))
	for _, exercise := range candidates {
		score := tierScores[exercise.Tier]
		reasons := []string{tierReasons[exercise.Tier]}

		if exercise.Mechanic == MechanicCompound {
			score += compoundBonus
			reasons = append(reasons, "Compound movement (more muscle engaged)")
		}

		uses := usage[exercise.ID]
		switch {
		case uses >= frequentThreshold && !recent[exercise.ID]:
			score += frequentBonus
			reasons = append(reasons, fmt.Sprintf("A favorite of yours (%d times in 90 days)", uses))
		case uses >= frequentMinThreshold && !recent[exercise.ID]:
			score += frequentLesserBonus
			reasons = append(reasons, fmt.Sprintf("Done %d times recently, familiar movement", uses))
		}

		if recent[exercise.ID] {
			score -= recencyPenalty
			reasons = append(reasons, "Done recently (variety penalty)")
		}

		if caution[exercise.ID] {
			score -= cautionPenalty
			reasons = append(reasons, "Use caution due to your injury history")
		}

		scored = append(scored, ScoredExercise{
			Exercise: exercise,
			Score:    score,
			Reasons:  reasons,
			Caution:  caution[exercise.ID],
		})
	}

	slices.SortStableFunc(scored, func(a, b ScoredExercise) int {
		return b.Score - a.Score
	})

	for _, candidate := range scored {
		if candidate.Exercise.Mechanic == MechanicCompound {
			compounds = append(compounds, candidate)
		} else {
			isolations = append(isolations, candidate)
		}
	}
	return compounds, isolations
}
