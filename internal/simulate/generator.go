package simulate

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	ratingTierDivisor  = 8
	maxGoals           = 5
)

// Constants for rating tier ranges.
const (
	averageMin   = 1100.0
	averageRange = 200.0
	strongMin    = 1300.0
	strongRange  = 150.0
	weakMin      = 1000.0
	weakRange    = 100.0
	eliteMin     = 1450.0
	eliteRange   = 100.0
)

// Constants for rating tier cases. The distribution is skewed towards
// average players, the way a real Sunday roster is.
const (
	caseStrong = 5
	caseWeak   = 6
	caseElite  = 7
)

// Tag assignment probabilities, expressed in percent.
const (
	gkChance        = 15
	playmakerChance = 20
	runnerChance    = 30
	defChance       = 40
	atkChance       = 40
	percentScale    = 100
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomInt returns a random int in [0, n).
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// chance returns true with the given percent probability.
func chance(percent int) bool {
	return randomInt(percentScale) < percent
}

// generateRoster creates numPlayers players with a varied rating
// distribution and plausible tag assignments.
func generateRoster(numPlayers int) []Player {
	players := make([]Player, numPlayers)
	for i := range players {
		players[i] = Player{
			Name:   fmt.Sprintf("player-%03d", i+1),
			Rating: generateTieredRating(),
			Tags:   generateTags(),
		}
	}
	return players
}

// generateTieredRating creates a rating with varied distribution.
func generateTieredRating() float64 {
	switch tier := randomInt(ratingTierDivisor); {
	case tier == caseElite:
		// Elite players (1450 - 1550) - rare
		return eliteMin + getRandomFloat()*eliteRange
	case tier == caseStrong:
		// Strong players (1300 - 1450)
		return strongMin + getRandomFloat()*strongRange
	case tier == caseWeak:
		// Weak players (1000 - 1100)
		return weakMin + getRandomFloat()*weakRange
	default:
		// Average players (1100 - 1300) - most common
		return averageMin + getRandomFloat()*averageRange
	}
}

// generateTags rolls position tags independently per player.
func generateTags() []string {
	var tags []string
	if chance(gkChance) {
		tags = append(tags, "GK")
	}
	if chance(playmakerChance) {
		tags = append(tags, "PLAYMAKER")
	}
	if chance(runnerChance) {
		tags = append(tags, "RUNNER")
	}
	if chance(defChance) {
		tags = append(tags, "DEF")
	}
	if chance(atkChance) {
		tags = append(tags, "ATK")
	}
	return tags
}

// draftPool picks poolSize distinct players from the roster.
func draftPool(roster []Player, poolSize int) []PoolPlayer {
	if poolSize > len(roster) {
		poolSize = len(roster)
	}

	// Partial Fisher-Yates over a copy of the indices.
	idx := make([]int, len(roster))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < poolSize; i++ {
		j := i + randomInt(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}

	pool := make([]PoolPlayer, poolSize)
	for i := 0; i < poolSize; i++ {
		pool[i] = PoolPlayer{Name: roster[idx[i]].Name}
	}
	return pool
}

// generateScore rolls a goal count for one side.
func generateScore() int {
	return randomInt(maxGoals + 1)
}
