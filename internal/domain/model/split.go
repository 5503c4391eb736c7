package model

// TeamSplit is a transient assignment of a pool into two teams with its
// cost breakdown. It is never persisted.
type TeamSplit struct {
	TeamA []Player `json:"team_a"`
	TeamB []Player `json:"team_b"`
	// Cost is the scalar badness of the split; lower is better.
	Cost float64 `json:"cost"`
	// EloDiff is the absolute difference of team average ratings.
	EloDiff float64 `json:"elo_diff"`
	// TagCosts maps each weighted tag to the absolute count imbalance
	// between the two teams.
	TagCosts map[Tag]int `json:"tag_costs"`
}

// SizeDiff returns the absolute team size difference.
func (s TeamSplit) SizeDiff() int {
	d := len(s.TeamA) - len(s.TeamB)
	if d < 0 {
		d = -d
	}
	return d
}
