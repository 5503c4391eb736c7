package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/sundayfc/matchday/internal/domain/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "matchday.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorePlayers(t *testing.T) {
	convey.Convey("Given a sqlite store on a fresh database", t, func() {
		s := newTestSQLiteStore(t)
		ctx := context.Background()

		convey.Convey("Saving and reading players round-trips tags", func() {
			p := model.Player{Name: "Alice", Rating: 1200, Tags: []model.Tag{model.TagGK, model.TagDef}, MatchesPlayed: 2}
			convey.So(s.SavePlayer(ctx, p), convey.ShouldBeNil)

			got, err := s.GetPlayer(ctx, "Alice")
			convey.So(err, convey.ShouldBeNil)
			convey.So(got.Rating, convey.ShouldEqual, 1200)
			convey.So(got.MatchesPlayed, convey.ShouldEqual, 2)
			convey.So(got.HasTag(model.TagGK), convey.ShouldBeTrue)
			convey.So(got.HasTag(model.TagDef), convey.ShouldBeTrue)
		})

		convey.Convey("Name uniqueness is case-insensitive", func() {
			convey.So(s.SavePlayer(ctx, model.Player{Name: "Alice", Rating: 1200}), convey.ShouldBeNil)
			convey.So(s.SavePlayer(ctx, model.Player{Name: "ALICE", Rating: 1200}), convey.ShouldEqual, ErrExists)

			got, err := s.GetPlayer(ctx, "alice")
			convey.So(err, convey.ShouldBeNil)
			convey.So(got.Name, convey.ShouldEqual, "Alice")
		})

		convey.Convey("Updates report ErrNotFound for unknown names", func() {
			convey.So(s.UpdateRating(ctx, "ghost", 1200, 1), convey.ShouldEqual, ErrNotFound)
			convey.So(s.UpdatePlayer(ctx, "ghost", 1200, nil, 0), convey.ShouldEqual, ErrNotFound)
			convey.So(s.DeletePlayer(ctx, "ghost"), convey.ShouldEqual, ErrNotFound)
		})

		convey.Convey("Rating updates persist and bump match counts", func() {
			convey.So(s.SavePlayer(ctx, model.Player{Name: "Bob", Rating: 1200}), convey.ShouldBeNil)
			convey.So(s.UpdateRating(ctx, "Bob", 1216.5, 1), convey.ShouldBeNil)

			got, err := s.GetPlayer(ctx, "Bob")
			convey.So(err, convey.ShouldBeNil)
			convey.So(got.Rating, convey.ShouldEqual, 1216.5)
			convey.So(got.MatchesPlayed, convey.ShouldEqual, 1)
		})

		convey.Convey("Listing preserves insertion order and Count matches", func() {
			convey.So(s.SavePlayer(ctx, model.Player{Name: "Alice", Rating: 1200}), convey.ShouldBeNil)
			convey.So(s.SavePlayer(ctx, model.Player{Name: "Bob", Rating: 1300}), convey.ShouldBeNil)
			convey.So(s.SavePlayer(ctx, model.Player{Name: "Carol", Rating: 1100}), convey.ShouldBeNil)

			players, err := s.ListPlayers(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(players), convey.ShouldEqual, 3)
			convey.So(players[0].Name, convey.ShouldEqual, "Alice")
			convey.So(players[2].Name, convey.ShouldEqual, "Carol")
			convey.So(s.Count(ctx), convey.ShouldEqual, 3)

			convey.So(s.DeletePlayer(ctx, "Bob"), convey.ShouldBeNil)
			convey.So(s.Count(ctx), convey.ShouldEqual, 2)
		})
	})
}

func TestSQLiteStoreMatches(t *testing.T) {
	convey.Convey("Given a sqlite store", t, func() {
		s := newTestSQLiteStore(t)
		ctx := context.Background()

		convey.Convey("Match records round-trip with snapshots intact", func() {
			m := model.Match{
				ID:     "3f0b0a1e",
				Date:   "2026-08-23",
				TeamA:  []string{"Alice", "Bob"},
				TeamB:  []string{"Carol", "Dave"},
				ScoreA: 5,
				ScoreB: 2,
				SnapshotA: map[string]model.RatingSnapshot{
					"Alice": {Before: 1200, Delta: 24},
					"Bob":   {Before: 1250, Delta: 24},
				},
				SnapshotB: map[string]model.RatingSnapshot{
					"Carol": {Before: 1300, Delta: -24},
					"Dave":  {Before: 1150, Delta: -24},
				},
			}
			convey.So(s.SaveMatch(ctx, m), convey.ShouldBeNil)

			matches, err := s.ListMatches(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(matches), convey.ShouldEqual, 1)

			got := matches[0]
			convey.So(got.TeamA, convey.ShouldResemble, []string{"Alice", "Bob"})
			convey.So(got.TeamB, convey.ShouldResemble, []string{"Carol", "Dave"})
			convey.So(got.ScoreA, convey.ShouldEqual, 5)

			snap, ok := got.Snapshot("Carol")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(snap.Before, convey.ShouldEqual, 1300)
			convey.So(snap.Delta, convey.ShouldEqual, -24)
			convey.So(snap.After(), convey.ShouldEqual, 1276)
		})

		convey.Convey("Multiple matches list in submission order", func() {
			for _, id := range []string{"a", "b", "c"} {
				convey.So(s.SaveMatch(ctx, model.Match{ID: id, Date: "2026-08-23"}), convey.ShouldBeNil)
			}
			matches, err := s.ListMatches(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(matches), convey.ShouldEqual, 3)
			convey.So(matches[0].ID, convey.ShouldEqual, "a")
			convey.So(matches[2].ID, convey.ShouldEqual, "c")
		})
	})
}
