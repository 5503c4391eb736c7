package model

// RatingSnapshot records a player's rating at the moment a match was applied
// and the delta it produced. The snapshot is the only retained historical
// rating source; a player's post-match rating is Before + Delta.
type RatingSnapshot struct {
	Before float64 `json:"before"`
	Delta  float64 `json:"delta"`
}

// After returns the rating after the delta was applied.
func (s RatingSnapshot) After() float64 {
	return s.Before + s.Delta
}

// Match is an immutable historical fact once saved. Team lists hold player
// names; order is insignificant. Snapshots exclude guests.
type Match struct {
	ID        string                    `json:"id"`
	Date      string                    `json:"date"`
	TeamA     []string                  `json:"team_a"`
	TeamB     []string                  `json:"team_b"`
	ScoreA    int                       `json:"score_a"`
	ScoreB    int                       `json:"score_b"`
	SnapshotA map[string]RatingSnapshot `json:"snapshot_a,omitempty"`
	SnapshotB map[string]RatingSnapshot `json:"snapshot_b,omitempty"`
}

// Snapshot returns the snapshot for the named player from either team,
// reporting whether one was captured.
func (m Match) Snapshot(name string) (RatingSnapshot, bool) {
	if s, ok := m.SnapshotA[name]; ok {
		return s, true
	}
	if s, ok := m.SnapshotB[name]; ok {
		return s, true
	}
	return RatingSnapshot{}, false
}
