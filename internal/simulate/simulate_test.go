package simulate

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	convey.Convey("Given the roster generator", t, func() {
		roster := generateRoster(30)

		convey.Convey("It produces the requested number of players", func() {
			convey.So(len(roster), convey.ShouldEqual, 30)
		})

		convey.Convey("All ratings fall in the tiered range", func() {
			for _, p := range roster {
				convey.So(p.Rating, convey.ShouldBeGreaterThanOrEqualTo, 1000)
				convey.So(p.Rating, convey.ShouldBeLessThanOrEqualTo, 1550)
			}
		})

		convey.Convey("Names are unique", func() {
			seen := make(map[string]struct{}, len(roster))
			for _, p := range roster {
				_, dup := seen[p.Name]
				convey.So(dup, convey.ShouldBeFalse)
				seen[p.Name] = struct{}{}
			}
		})

		convey.Convey("Drafted pools contain distinct roster members", func() {
			pool := draftPool(roster, 10)
			convey.So(len(pool), convey.ShouldEqual, 10)

			seen := make(map[string]struct{}, len(pool))
			for _, p := range pool {
				_, dup := seen[p.Name]
				convey.So(dup, convey.ShouldBeFalse)
				seen[p.Name] = struct{}{}
			}
		})

		convey.Convey("Drafting more than the roster clamps to roster size", func() {
			pool := draftPool(roster[:4], 10)
			convey.So(len(pool), convey.ShouldEqual, 4)
		})

		convey.Convey("Scores stay within the goal cap", func() {
			for i := 0; i < 100; i++ {
				s := generateScore()
				convey.So(s, convey.ShouldBeGreaterThanOrEqualTo, 0)
				convey.So(s, convey.ShouldBeLessThanOrEqualTo, maxGoals)
			}
		})
	})
}

func TestVerification(t *testing.T) {
	convey.Convey("Given recorded matches", t, func() {
		good := []Match{{
			ID: "m-1",
			SnapshotA: map[string]Snapshot{
				"a1": {Before: 1200, Delta: 16},
				"a2": {Before: 1250, Delta: 16},
			},
			SnapshotB: map[string]Snapshot{
				"b1": {Before: 1300, Delta: -16},
				"b2": {Before: 1150, Delta: -16},
			},
		}}

		convey.Convey("Zero-sum verification accepts cancelling deltas", func() {
			convey.So(verifyZeroSum(good), convey.ShouldBeNil)
		})

		convey.Convey("Zero-sum verification rejects diverging teammates", func() {
			bad := []Match{{
				ID: "m-2",
				SnapshotA: map[string]Snapshot{
					"a1": {Delta: 16},
					"a2": {Delta: 12},
				},
				SnapshotB: map[string]Snapshot{"b1": {Delta: -16}},
			}}
			convey.So(verifyZeroSum(bad), convey.ShouldNotBeNil)
		})

		convey.Convey("Zero-sum verification rejects non-cancelling sides", func() {
			bad := []Match{{
				ID:        "m-3",
				SnapshotA: map[string]Snapshot{"a1": {Delta: 16}},
				SnapshotB: map[string]Snapshot{"b1": {Delta: -10}},
			}}
			convey.So(verifyZeroSum(bad), convey.ShouldNotBeNil)
		})

		convey.Convey("Rating reconstruction follows snapshot chains", func() {
			seeded := []Player{
				{Name: "a1", Rating: 1200},
				{Name: "a2", Rating: 1250},
				{Name: "b1", Rating: 1300},
				{Name: "b2", Rating: 1150},
			}
			final := []Player{
				{Name: "a1", Rating: 1216, MatchesPlayed: 1},
				{Name: "a2", Rating: 1266, MatchesPlayed: 1},
				{Name: "b1", Rating: 1284, MatchesPlayed: 1},
				{Name: "b2", Rating: 1134, MatchesPlayed: 1},
			}
			convey.So(verifyRatingReconstruction(seeded, final, good), convey.ShouldBeNil)
			convey.So(verifyMatchCounts(final, good), convey.ShouldBeNil)

			convey.Convey("And a drifted rating is caught", func() {
				final[0].Rating = 1300
				convey.So(verifyRatingReconstruction(seeded, final, good), convey.ShouldNotBeNil)
			})

			convey.Convey("And a wrong match count is caught", func() {
				final[0].MatchesPlayed = 3
				convey.So(verifyMatchCounts(final, good), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("Leaderboard consistency checks ordering and agreement", func() {
			final := []Player{
				{Name: "a1", Rating: 1216},
				{Name: "b1", Rating: 1284},
			}
			ranks := map[string]Entry{
				"b1": {Rank: 1, Name: "b1", Rating: 1284},
				"a1": {Rank: 2, Name: "a1", Rating: 1216},
			}
			board := []Entry{
				{Rank: 1, Name: "b1", Rating: 1284},
				{Rank: 2, Name: "a1", Rating: 1216},
			}
			convey.So(verifyLeaderboardConsistency(final, ranks, board), convey.ShouldBeNil)

			convey.Convey("And a mis-sorted board is caught", func() {
				swapped := []Entry{board[1], board[0]}
				convey.So(verifyLeaderboardConsistency(final, ranks, swapped), convey.ShouldNotBeNil)
			})

			convey.Convey("And a rank disagreement is caught", func() {
				ranks["a1"] = Entry{Rank: 5, Name: "a1", Rating: 1216}
				convey.So(verifyLeaderboardConsistency(final, ranks, board), convey.ShouldNotBeNil)
			})
		})
	})
}
