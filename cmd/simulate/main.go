package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/sundayfc/matchday/internal/simulate"
)

// Default configuration constants.
const (
	defaultNumPlayers        = 20
	defaultNumMatches        = 50
	defaultPoolSize          = 10
	defaultTopN              = 10
	defaultWorkerMultiplier  = 2
	defaultTimeout           = 30 * time.Second
	defaultSimulationTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numPlayers = flag.Int("players", defaultNumPlayers, "Number of roster players to seed")
		numMatches = flag.Int("matches", defaultNumMatches, "Number of matchdays to simulate")
		poolSize   = flag.Int("pool", defaultPoolSize, "Players drafted per matchday (4-14)")
		topN       = flag.Int("top", defaultTopN, "Number of top entries to fetch from leaderboard")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for recorded matches (default: simulated_matches_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for simulation output (default: simulation_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	if err := simulate.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSimulationTimeout)
	defer cancel()

	config := &simulate.Config{
		BaseURL:    *baseURL,
		NumPlayers: *numPlayers,
		NumMatches: *numMatches,
		PoolSize:   *poolSize,
		TopN:       *topN,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}
