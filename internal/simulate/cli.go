package simulate

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/sundayfc/matchday/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "simulation_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the season simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`Matchday Season Simulator
=========================

A concurrent tool that seeds a roster, balances matchday pools and records
simulated results against a running matchday service, then verifies that
the rating bookkeeping stayed consistent.

Usage:
  go run cmd/simulate/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -players int
        Number of roster players to seed (default 20)
  -matches int
        Number of matchdays to simulate (default 50)
  -pool int
        Players drafted per matchday, 4-14 (default 10)
  -top int
        Number of top entries to fetch from leaderboard (default 10)
  -workers int
        Number of concurrent workers for seeding and reads (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for recorded matches (default: simulated_matches_TIMESTAMP.json)
  -log string
        Log file for simulation output (default: simulation_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate a season with defaults
  go run cmd/simulate/main.go

  # A long season on a bigger roster
  go run cmd/simulate/main.go -players 30 -matches 200 -pool 12

  # Verbose run against a non-default port
  go run cmd/simulate/main.go -verbose -url http://localhost:8080
`)
}
