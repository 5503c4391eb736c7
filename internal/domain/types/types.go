// Package types contains common types shared across layers.
package types

// Entry represents a leaderboard row: a roster player ranked by rating.
type Entry struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Matches int     `json:"matches_played"`
}

// RatingPoint is one step of a player's rating progression, reconstructed
// from match snapshots.
type RatingPoint struct {
	Date   string  `json:"date"`
	Rating float64 `json:"rating"`
}

// Projection is the display payload for an expected-outcome query.
type Projection struct {
	AvgA      float64 `json:"avg_a"`
	AvgB      float64 `json:"avg_b"`
	ExpectedA float64 `json:"expected_a"`
	ExpectedB float64 `json:"expected_b"`
}
