package repository

import (
	"context"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/sundayfc/matchday/internal/domain/model"
)

func TestMemoryStorePlayers(t *testing.T) {
	convey.Convey("Given an empty in-memory store", t, func() {
		s := NewMemoryStore()
		ctx := context.Background()

		convey.Convey("The roster starts empty", func() {
			players, err := s.ListPlayers(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(players, convey.ShouldBeEmpty)
			convey.So(s.Count(ctx), convey.ShouldEqual, 0)
		})

		convey.Convey("When players are saved", func() {
			err := s.SavePlayer(ctx, model.Player{Name: "Alice", Rating: 1200, Tags: []model.Tag{model.TagGK}})
			convey.So(err, convey.ShouldBeNil)
			err = s.SavePlayer(ctx, model.Player{Name: "Bob", Rating: 1300})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("They are listed in insertion order", func() {
				players, err := s.ListPlayers(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(players), convey.ShouldEqual, 2)
				convey.So(players[0].Name, convey.ShouldEqual, "Alice")
				convey.So(players[1].Name, convey.ShouldEqual, "Bob")
			})

			convey.Convey("Lookup ignores case", func() {
				p, err := s.GetPlayer(ctx, "alice")
				convey.So(err, convey.ShouldBeNil)
				convey.So(p.Name, convey.ShouldEqual, "Alice")
				convey.So(p.HasTag(model.TagGK), convey.ShouldBeTrue)
			})

			convey.Convey("A duplicate name is rejected regardless of case", func() {
				err := s.SavePlayer(ctx, model.Player{Name: "ALICE"})
				convey.So(err, convey.ShouldEqual, ErrExists)
			})

			convey.Convey("UpdatePlayer replaces rating, tags and matches", func() {
				err := s.UpdatePlayer(ctx, "Bob", 1350, []model.Tag{model.TagAtk}, 4)
				convey.So(err, convey.ShouldBeNil)
				p, err := s.GetPlayer(ctx, "Bob")
				convey.So(err, convey.ShouldBeNil)
				convey.So(p.Rating, convey.ShouldEqual, 1350)
				convey.So(p.MatchesPlayed, convey.ShouldEqual, 4)
				convey.So(p.HasTag(model.TagAtk), convey.ShouldBeTrue)
			})

			convey.Convey("UpdateRating leaves tags untouched", func() {
				err := s.UpdateRating(ctx, "Alice", 1216, 1)
				convey.So(err, convey.ShouldBeNil)
				p, err := s.GetPlayer(ctx, "Alice")
				convey.So(err, convey.ShouldBeNil)
				convey.So(p.Rating, convey.ShouldEqual, 1216)
				convey.So(p.MatchesPlayed, convey.ShouldEqual, 1)
				convey.So(p.HasTag(model.TagGK), convey.ShouldBeTrue)
			})

			convey.Convey("DeletePlayer removes from listing", func() {
				err := s.DeletePlayer(ctx, "Alice")
				convey.So(err, convey.ShouldBeNil)
				players, err := s.ListPlayers(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(players), convey.ShouldEqual, 1)
				convey.So(players[0].Name, convey.ShouldEqual, "Bob")

				_, err = s.GetPlayer(ctx, "Alice")
				convey.So(err, convey.ShouldEqual, ErrNotFound)
			})
		})

		convey.Convey("Operations on missing players return ErrNotFound", func() {
			_, err := s.GetPlayer(ctx, "ghost")
			convey.So(err, convey.ShouldEqual, ErrNotFound)
			convey.So(s.UpdateRating(ctx, "ghost", 1200, 1), convey.ShouldEqual, ErrNotFound)
			convey.So(s.UpdatePlayer(ctx, "ghost", 1200, nil, 0), convey.ShouldEqual, ErrNotFound)
			convey.So(s.DeletePlayer(ctx, "ghost"), convey.ShouldEqual, ErrNotFound)
		})
	})
}

func TestMemoryStoreMatches(t *testing.T) {
	convey.Convey("Given an in-memory store", t, func() {
		s := NewMemoryStore()
		ctx := context.Background()

		m1 := model.Match{
			ID:     "m-1",
			Date:   "2026-08-23",
			TeamA:  []string{"Alice", "Bob"},
			TeamB:  []string{"Carol", "Dave"},
			ScoreA: 3,
			ScoreB: 1,
			SnapshotA: map[string]model.RatingSnapshot{
				"Alice": {Before: 1200, Delta: 16},
			},
			SnapshotB: map[string]model.RatingSnapshot{
				"Carol": {Before: 1200, Delta: -16},
			},
		}

		convey.Convey("Matches append and list in order", func() {
			convey.So(s.SaveMatch(ctx, m1), convey.ShouldBeNil)
			convey.So(s.SaveMatch(ctx, model.Match{ID: "m-2", Date: "2026-08-24"}), convey.ShouldBeNil)

			matches, err := s.ListMatches(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(matches), convey.ShouldEqual, 2)
			convey.So(matches[0].ID, convey.ShouldEqual, "m-1")
			convey.So(matches[1].ID, convey.ShouldEqual, "m-2")

			snap, ok := matches[0].Snapshot("Alice")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(snap.After(), convey.ShouldEqual, 1216)
		})
	})
}
