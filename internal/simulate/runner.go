package simulate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sundayfc/matchday/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete season simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting matchday season simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("players", config.NumPlayers),
		logger.Int("matches", config.NumMatches),
		logger.Int("poolSize", config.PoolSize),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate and seed the roster
	roster := generateRoster(config.NumPlayers)
	if err := seedRoster(ctx, config, roster, stats); err != nil {
		return fmt.Errorf("roster seeding failed: %w", err)
	}

	// Step 3: Simulate matchdays. Each match depends on the ratings the
	// previous one produced, so this stage runs sequentially.
	if err := playSeason(ctx, config, roster, stats); err != nil {
		return fmt.Errorf("season simulation failed: %w", err)
	}

	// Step 4: Retrieve per-player ranks concurrently
	client := newHTTPClient(config.Timeout)
	finalRoster, err := fetchRoster(ctx, client, config)
	if err != nil {
		return fmt.Errorf("final roster retrieval failed: %w", err)
	}
	ranks, err := retrieveRanks(ctx, config, finalRoster)
	if err != nil {
		return fmt.Errorf("rank retrieval failed: %w", err)
	}

	// Step 5: Get leaderboard
	leaderboard, err := getLeaderboard(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("leaderboard retrieval failed: %w", err)
	}

	// Step 6: Fetch history and verify bookkeeping
	matches, err := fetchMatches(ctx, client, config)
	if err != nil {
		return fmt.Errorf("history retrieval failed: %w", err)
	}
	if err := verifyResults(ctx, config, roster, finalRoster, matches, ranks, leaderboard); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 7: Save recorded matches to file
	if err := saveMatchesToFile(ctx, config, matches); err != nil {
		logger.Get().Warn(ctx, "failed to save matches to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// playSeason drafts a pool, balances it and records a result for each
// matchday.
func playSeason(ctx context.Context, config *Config, roster []Player, stats *Stats) error {
	log.Printf("Simulating %d matchdays with pools of %d...", config.NumMatches, config.PoolSize)

	client := newHTTPClient(config.Timeout)
	startDate := time.Now().AddDate(0, 0, -7*config.NumMatches)

	for day := 0; day < config.NumMatches; day++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled during simulation: %w", ctx.Err())
		default:
		}

		pool := draftPool(roster, config.PoolSize)

		result, err := balancePool(ctx, client, config, pool)
		if err != nil {
			stats.Failed++
			return fmt.Errorf("matchday %d balance failed: %w", day+1, err)
		}
		stats.BalanceCalls++
		stats.SplitsEvaluated += result.Evaluated
		if result.Split == nil {
			return fmt.Errorf("matchday %d: no split for pool of %d", day+1, len(pool))
		}

		submission := map[string]interface{}{
			"submission_id": uuid.New().String(),
			"date":          startDate.AddDate(0, 0, 7*day).Format("2006-01-02"),
			"team_a":        toPool(result.Split.TeamA),
			"team_b":        toPool(result.Split.TeamB),
			"score_a":       generateScore(),
			"score_b":       generateScore(),
		}

		ack, err := recordMatch(ctx, client, config, submission)
		if err != nil {
			stats.Failed++
			return fmt.Errorf("matchday %d record failed: %w", day+1, err)
		}
		if ack.Duplicate {
			stats.Duplicates++
			continue
		}
		stats.MatchesPlayed++

		if config.Verbose {
			log.Printf("matchday %d: %d-%d (eloDiff %.1f, %d splits evaluated)",
				day+1, submission["score_a"], submission["score_b"],
				result.Split.EloDiff, result.Evaluated)
		}
	}

	log.Printf("Recorded %d matches (%d duplicates, %d failed)",
		stats.MatchesPlayed, stats.Duplicates, stats.Failed)
	return nil
}

func toPool(team []Player) []PoolPlayer {
	out := make([]PoolPlayer, len(team))
	for i, p := range team {
		out[i] = PoolPlayer{Name: p.Name}
	}
	return out
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != statusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveMatchesToFile saves the recorded matches to a JSON file.
func saveMatchesToFile(ctx context.Context, config *Config, matches []Match) error {
	if len(matches) == 0 {
		return fmt.Errorf("no matches to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "simulated_matches_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}
	if err := os.WriteFile(filename, data, logFilePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "matches saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var matchesPerSecond float64
	if stats.Duration > 0 {
		matchesPerSecond = float64(stats.MatchesPlayed) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("playersSeeded", stats.PlayersSeeded),
		logger.Int("matchesPlayed", stats.MatchesPlayed),
		logger.Int("balanceCalls", stats.BalanceCalls),
		logger.Int("splitsEvaluated", stats.SplitsEvaluated),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("failed", stats.Failed),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("matchesPerSecond", matchesPerSecond))
}
