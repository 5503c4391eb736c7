package simulate

import "time"

// Config holds configuration for the season simulation.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumPlayers int           // Number of roster players to seed
	NumMatches int           // Number of matchdays to simulate
	PoolSize   int           // Players drafted per matchday
	TopN       int           // Number of top entries to fetch
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for recorded matches
	LogFile    string        // Log file for simulation output
	Verbose    bool          // Enable verbose logging
}

// Player mirrors the roster payload returned by the API.
type Player struct {
	Name          string   `json:"name"`
	Rating        float64  `json:"rating"`
	Tags          []string `json:"tags,omitempty"`
	MatchesPlayed int      `json:"matches_played"`
}

// PoolPlayer mirrors the balance/match participant payload.
type PoolPlayer struct {
	Name   string   `json:"name"`
	Rating float64  `json:"rating,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Guest  bool     `json:"guest,omitempty"`
}

// TeamSplit mirrors the balancer response payload.
type TeamSplit struct {
	TeamA   []Player `json:"team_a"`
	TeamB   []Player `json:"team_b"`
	Cost    float64  `json:"cost"`
	EloDiff float64  `json:"elo_diff"`
}

// BalanceResult mirrors the POST /balance response.
type BalanceResult struct {
	Split     *TeamSplit `json:"split"`
	Evaluated int        `json:"evaluated"`
}

// Snapshot mirrors a per-player rating snapshot in a match record.
type Snapshot struct {
	Before float64 `json:"before"`
	Delta  float64 `json:"delta"`
}

// Match mirrors a recorded match payload.
type Match struct {
	ID        string              `json:"id"`
	Date      string              `json:"date"`
	TeamA     []string            `json:"team_a"`
	TeamB     []string            `json:"team_b"`
	ScoreA    int                 `json:"score_a"`
	ScoreB    int                 `json:"score_b"`
	SnapshotA map[string]Snapshot `json:"snapshot_a"`
	SnapshotB map[string]Snapshot `json:"snapshot_b"`
}

// MatchAck mirrors the POST /matches response.
type MatchAck struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
	Match     *Match `json:"match,omitempty"`
}

// Entry mirrors a leaderboard row.
type Entry struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Matches int     `json:"matches_played"`
}

// Stats holds simulation statistics.
type Stats struct {
	PlayersSeeded      int
	MatchesPlayed      int
	BalanceCalls       int
	SplitsEvaluated    int
	Duplicates         int
	Failed             int
	LeaderboardEntries int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
