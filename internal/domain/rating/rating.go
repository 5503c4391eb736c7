// Package rating implements the Elo-style rating model for recorded matches.
//
// All functions are pure: they take already-selected teams and a final score
// and return deltas for the caller to persist. Guests participate in team
// averages but never receive a delta.
package rating

import (
	"math"

	"github.com/sundayfc/matchday/internal/domain/model"
)

// Rating model constants.
const (
	// KFactor is the standard Elo K-factor.
	KFactor = 32.0
	// GoalDiffCap is the maximum goal-difference multiplier, reached at a
	// margin of four goals.
	GoalDiffCap = 2.5
	// goalDiffStep is the multiplier increment per goal beyond the first.
	goalDiffStep = 0.5
	// eloSpread is the rating spread of the logistic expectation curve.
	eloSpread = 400.0
)

// Average returns the arithmetic mean rating of the players.
// An empty team averages to 0, the sentinel for "no team".
func Average(players []model.Player) float64 {
	if len(players) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range players {
		sum += p.Rating
	}
	return sum / float64(len(players))
}

// ExpectedScore returns the expected outcome for side A in (0,1).
// ExpectedScore(a,b) + ExpectedScore(b,a) == 1 for all finite inputs.
func ExpectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/eloSpread))
}

// GoalDiffMultiplier scales the rating exchange by the margin of victory.
// Margins of 0 or 1 carry no boost; the multiplier saturates at GoalDiffCap
// for margins of four or more goals.
func GoalDiffMultiplier(goalDiff int) float64 {
	if goalDiff <= 1 {
		return 1.0
	}
	return math.Min(1+float64(goalDiff-1)*goalDiffStep, GoalDiffCap)
}

// Changes computes the per-player rating deltas for a finished match, keyed
// by player name. The exchange is zero-sum: every non-guest on team A gets
// deltaA, every non-guest on team B gets -deltaA. Guest names are absent
// from the result; their ratings still count toward the team averages.
func Changes(teamA, teamB []model.Player, scoreA, scoreB int) map[string]float64 {
	avgA := Average(teamA)
	avgB := Average(teamB)

	expectedA := ExpectedScore(avgA, avgB)

	var actualA float64
	switch {
	case scoreA > scoreB:
		actualA = 1.0
	case scoreA < scoreB:
		actualA = 0.0
	default:
		actualA = 0.5
	}

	goalDiff := scoreA - scoreB
	if goalDiff < 0 {
		goalDiff = -goalDiff
	}
	multiplier := GoalDiffMultiplier(goalDiff)

	deltaA := KFactor * multiplier * (actualA - expectedA)
	deltaB := -deltaA

	changes := make(map[string]float64, len(teamA)+len(teamB))
	for _, p := range teamA {
		if !p.Guest {
			changes[p.Name] = deltaA
		}
	}
	for _, p := range teamB {
		if !p.Guest {
			changes[p.Name] = deltaB
		}
	}
	return changes
}
