// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath points at the sqlite database file. Empty selects the
	// in-memory store.
	DBPath string `koanf:"db_path"`

	// DedupeSize bounds the match submission deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// TagWeights maps position tags to balancing penalty weights.
	TagWeights map[string]float64 `koanf:"tag_weights"`

	// Shuffle enables randomised selection among near-optimal splits.
	Shuffle bool `koanf:"shuffle"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		DBPath:              "",
		DedupeSize:          10_000,
		MaxLeaderboardLimit: 100,
		TagWeights: map[string]float64{
			"PLAYMAKER": 100,
			"RUNNER":    80,
			"DEF":       40,
			"ATK":       20,
		},
		Shuffle: false,
	}
}
