package simulate

import (
	"context"
	"fmt"
	"log"
	"math"
)

// Verification tolerance for floating point rating arithmetic.
const ratingEpsilon = 1e-6

// verifyResults checks that the service's rating bookkeeping stayed
// consistent across the simulated season.
func verifyResults(ctx context.Context, config *Config, seeded, finalRoster []Player, matches []Match, ranks map[string]Entry, leaderboard []Entry) error {
	log.Println("Verifying results...")

	if len(finalRoster) == 0 {
		return fmt.Errorf("no roster to verify")
	}

	if err := verifyZeroSum(matches); err != nil {
		return fmt.Errorf("zero-sum check failed: %w", err)
	}
	log.Println("Zero-sum rating transfers verified")

	if err := verifyRatingReconstruction(seeded, finalRoster, matches); err != nil {
		return fmt.Errorf("rating reconstruction failed: %w", err)
	}
	log.Println("Rating reconstruction from snapshots verified")

	if err := verifyMatchCounts(finalRoster, matches); err != nil {
		return fmt.Errorf("match count check failed: %w", err)
	}
	log.Println("Per-player match counts verified")

	if err := verifyLeaderboardConsistency(finalRoster, ranks, leaderboard); err != nil {
		return fmt.Errorf("leaderboard check failed: %w", err)
	}
	log.Println("Leaderboard consistency verified")

	displayTopPerformers(leaderboard, config.Verbose)

	log.Println("Result verification completed")
	return nil
}

// verifyZeroSum checks that within each match every teammate received
// the same delta and the two sides' deltas cancel.
func verifyZeroSum(matches []Match) error {
	for _, m := range matches {
		perA, err := uniformDelta(m.ID, m.SnapshotA)
		if err != nil {
			return err
		}
		perB, err := uniformDelta(m.ID, m.SnapshotB)
		if err != nil {
			return err
		}
		if math.Abs(perA+perB) > ratingEpsilon {
			return fmt.Errorf("match %s: per-player deltas %+.4f and %+.4f do not cancel", m.ID, perA, perB)
		}
	}
	return nil
}

// uniformDelta returns the shared delta of a team snapshot, failing if
// teammates diverged.
func uniformDelta(matchID string, snapshot map[string]Snapshot) (float64, error) {
	first := true
	var delta float64
	for name, s := range snapshot {
		if first {
			delta = s.Delta
			first = false
			continue
		}
		if math.Abs(s.Delta-delta) > ratingEpsilon {
			return 0, fmt.Errorf("match %s: player %s delta %+.4f differs from teammates' %+.4f", matchID, name, s.Delta, delta)
		}
	}
	return delta, nil
}

// verifyRatingReconstruction replays every snapshot delta on top of the
// seeded ratings and compares with the live roster.
func verifyRatingReconstruction(seeded, finalRoster []Player, matches []Match) error {
	expected := make(map[string]float64, len(seeded))
	for _, p := range seeded {
		expected[p.Name] = p.Rating
	}

	for _, m := range matches {
		for name, s := range m.SnapshotA {
			expected[name] = s.Before + s.Delta
		}
		for name, s := range m.SnapshotB {
			expected[name] = s.Before + s.Delta
		}
	}

	for _, p := range finalRoster {
		want, ok := expected[p.Name]
		if !ok {
			return fmt.Errorf("player %s missing from seeded roster", p.Name)
		}
		if math.Abs(p.Rating-want) > ratingEpsilon {
			return fmt.Errorf("player %s: live rating %.4f does not match reconstructed %.4f", p.Name, p.Rating, want)
		}
	}
	return nil
}

// verifyMatchCounts checks that matches_played equals the number of
// snapshots each player appears in.
func verifyMatchCounts(finalRoster []Player, matches []Match) error {
	counts := make(map[string]int)
	for _, m := range matches {
		for name := range m.SnapshotA {
			counts[name]++
		}
		for name := range m.SnapshotB {
			counts[name]++
		}
	}

	for _, p := range finalRoster {
		if p.MatchesPlayed != counts[p.Name] {
			return fmt.Errorf("player %s: matches_played %d but appears in %d matches", p.Name, p.MatchesPlayed, counts[p.Name])
		}
	}
	return nil
}

// verifyLeaderboardConsistency checks ordering and agreement between the
// leaderboard, per-player ranks and the live roster.
func verifyLeaderboardConsistency(finalRoster []Player, ranks map[string]Entry, leaderboard []Entry) error {
	if len(leaderboard) == 0 {
		return fmt.Errorf("empty leaderboard")
	}

	for i := 1; i < len(leaderboard); i++ {
		if leaderboard[i].Rating > leaderboard[i-1].Rating {
			return fmt.Errorf("leaderboard not sorted: entry %d outranks entry %d", i, i-1)
		}
	}

	ratings := make(map[string]float64, len(finalRoster))
	for _, p := range finalRoster {
		ratings[p.Name] = p.Rating
	}
	for _, e := range leaderboard {
		if r, ok := ratings[e.Name]; !ok || math.Abs(r-e.Rating) > ratingEpsilon {
			return fmt.Errorf("leaderboard entry %s rating %.4f disagrees with roster", e.Name, e.Rating)
		}
		if rank, ok := ranks[e.Name]; ok && rank.Rank != e.Rank {
			return fmt.Errorf("player %s: rank endpoint says %d, leaderboard says %d", e.Name, rank.Rank, e.Rank)
		}
	}
	return nil
}

// displayTopPerformers shows the top leaderboard entries.
func displayTopPerformers(leaderboard []Entry, verbose bool) {
	log.Printf("Top %d players:", len(leaderboard))
	for _, e := range leaderboard {
		log.Printf("   %d. %s - %.1f (%d matches)", e.Rank, e.Name, e.Rating, e.Matches)
	}

	if verbose && len(leaderboard) > 0 {
		sum := 0.0
		for _, e := range leaderboard {
			sum += e.Rating
		}
		log.Printf("Average rating across top entries: %.1f", sum/float64(len(leaderboard)))
	}
}

