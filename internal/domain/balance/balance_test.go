package balance_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/sundayfc/matchday/internal/domain/balance"
	"github.com/sundayfc/matchday/internal/domain/model"
	"github.com/sundayfc/matchday/internal/domain/rating"
)

func makePlayer(name string, r float64, tags ...model.Tag) model.Player {
	return model.Player{Name: name, Rating: r, Tags: tags}
}

func names(team []model.Player) []string {
	out := make([]string, len(team))
	for i, p := range team {
		out[i] = p.Name
	}
	return out
}

func TestSplitPoolSizes(t *testing.T) {
	convey.Convey("Given a balancer", t, func() {
		b := balance.New()

		convey.Convey("When the pool has fewer than two players", func() {
			split, evaluated := b.Split(nil)
			convey.So(split, convey.ShouldBeNil)
			convey.So(evaluated, convey.ShouldEqual, 0)

			split, _ = b.Split([]model.Player{makePlayer("Alone", 1200)})
			convey.So(split, convey.ShouldBeNil)
		})

		convey.Convey("When the pool has exactly two players", func() {
			split, _ := b.Split([]model.Player{
				makePlayer("Alice", 1200),
				makePlayer("Bob", 1200),
			})

			convey.So(split, convey.ShouldNotBeNil)
			convey.So(len(split.TeamA), convey.ShouldEqual, 1)
			convey.So(len(split.TeamB), convey.ShouldEqual, 1)
		})

		convey.Convey("When the pool is odd", func() {
			pool := []model.Player{
				makePlayer("A", 1200), makePlayer("B", 1200), makePlayer("C", 1200),
				makePlayer("D", 1200), makePlayer("E", 1200),
			}
			split, _ := b.Split(pool)

			convey.Convey("Then team B carries the extra player", func() {
				convey.So(len(split.TeamA), convey.ShouldEqual, 2)
				convey.So(len(split.TeamB), convey.ShouldEqual, 3)
				convey.So(split.SizeDiff(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the pool is at the 7v7 maximum", func() {
			pool := make([]model.Player, model.MaxPoolSize)
			for i := range pool {
				pool[i] = makePlayer(string(rune('a'+i)), 1000+float64(i)*25)
			}
			split, evaluated := b.Split(pool)

			convey.So(split, convey.ShouldNotBeNil)
			convey.So(len(split.TeamA), convey.ShouldEqual, 7)
			convey.So(len(split.TeamB), convey.ShouldEqual, 7)
			convey.So(evaluated, convey.ShouldEqual, 3432) // C(14,7)
		})
	})
}

func TestSplitRatingBalance(t *testing.T) {
	convey.Convey("Given an untagged pool with a clear best pairing", t, func() {
		b := balance.New()
		pool := []model.Player{
			makePlayer("Strong", 1400),
			makePlayer("Mid1", 1200),
			makePlayer("Mid2", 1200),
			makePlayer("Weak", 1000),
		}

		split, evaluated := b.Split(pool)

		convey.Convey("Then the extremes pair off and the averages match", func() {
			convey.So(split.EloDiff, convey.ShouldAlmostEqual, 0, 1e-9)
			convey.So(split.Cost, convey.ShouldAlmostEqual, 0, 1e-9)
		})

		convey.Convey("Then every C(4,2) candidate was evaluated", func() {
			convey.So(evaluated, convey.ShouldEqual, 6)
		})
	})
}

func TestSplitIsArgmin(t *testing.T) {
	convey.Convey("Given a mixed pool, the returned split is a true argmin", t, func() {
		b := balance.New()
		pool := []model.Player{
			makePlayer("a", 1310, model.TagDef),
			makePlayer("b", 1150, model.TagAtk),
			makePlayer("c", 1280, model.TagPlaymaker),
			makePlayer("d", 1025),
			makePlayer("e", 1210, model.TagRunner, model.TagDef),
			makePlayer("f", 1190),
		}

		split, _ := b.Split(pool)
		convey.So(split, convey.ShouldNotBeNil)

		// Independent brute force over all balanced bitmask splits.
		weights := model.DefaultTagWeights()
		best := math.Inf(1)
		for mask := 0; mask < 1<<len(pool); mask++ {
			var teamA, teamB []model.Player
			for i, p := range pool {
				if mask&(1<<i) != 0 {
					teamA = append(teamA, p)
				} else {
					teamB = append(teamB, p)
				}
			}
			if len(teamA) != len(pool)/2 {
				continue
			}
			cost := math.Abs(rating.Average(teamA) - rating.Average(teamB))
			for _, tag := range model.WeightedTags {
				diff := model.CountTag(teamA, tag) - model.CountTag(teamB, tag)
				if diff < 0 {
					diff = -diff
				}
				cost += float64(diff) * weights[tag]
			}
			if cost < best {
				best = cost
			}
		}

		convey.So(split.Cost, convey.ShouldAlmostEqual, best, 1e-9)
	})
}

func TestSplitTagBalance(t *testing.T) {
	convey.Convey("Given two playmakers in a pool of four", t, func() {
		b := balance.New()
		pool := []model.Player{
			makePlayer("PM1", 1200, model.TagPlaymaker),
			makePlayer("PM2", 1200, model.TagPlaymaker),
			makePlayer("X", 1200),
			makePlayer("Y", 1200),
		}

		split, _ := b.Split(pool)

		convey.Convey("Then the playmakers land on opposite teams", func() {
			convey.So(model.CountTag(split.TeamA, model.TagPlaymaker), convey.ShouldEqual, 1)
			convey.So(model.CountTag(split.TeamB, model.TagPlaymaker), convey.ShouldEqual, 1)
			convey.So(split.TagCosts[model.TagPlaymaker], convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given tag balance conflicting with rating balance", t, func() {
		b := balance.New()
		// Splitting the playmakers costs 100 less than a 50-point
		// rating imbalance costs, so tags win.
		pool := []model.Player{
			makePlayer("PM1", 1250, model.TagPlaymaker),
			makePlayer("PM2", 1250, model.TagPlaymaker),
			makePlayer("X", 1200),
			makePlayer("Y", 1200),
		}

		split, _ := b.Split(pool)

		convey.So(split.TagCosts[model.TagPlaymaker], convey.ShouldEqual, 0)
		convey.So(split.EloDiff, convey.ShouldAlmostEqual, 0, 1e-9)
	})
}

func TestSplitTwoKeepers(t *testing.T) {
	convey.Convey("Given exactly two goalkeepers", t, func() {
		b := balance.New()

		convey.Convey("When the rest of the pool can fill both sides", func() {
			pool := []model.Player{
				makePlayer("GK1", 1300, model.TagGK),
				makePlayer("GK2", 1100, model.TagGK),
				makePlayer("P1", 1250),
				makePlayer("P2", 1050),
			}

			split, evaluated := b.Split(pool)

			convey.Convey("Then each team has exactly one keeper", func() {
				convey.So(model.CountTag(split.TeamA, model.TagGK), convey.ShouldEqual, 1)
				convey.So(model.CountTag(split.TeamB, model.TagGK), convey.ShouldEqual, 1)
			})

			convey.Convey("Then only the two keeper-respecting fills were tried", func() {
				convey.So(evaluated, convey.ShouldEqual, 2)
			})

			convey.Convey("Then the cheaper fill wins", func() {
				// GK1(1300)+P2(1050) vs GK2(1100)+P1(1250) averages out;
				// the alternative leaves a 200-point gap.
				convey.So(split.EloDiff, convey.ShouldAlmostEqual, 0, 1e-9)
			})
		})

		convey.Convey("When the pool is just the two keepers", func() {
			pool := []model.Player{
				makePlayer("GK1", 1300, model.TagGK),
				makePlayer("GK2", 1100, model.TagGK),
			}

			split, _ := b.Split(pool)

			convey.So(split, convey.ShouldNotBeNil)
			convey.So(len(split.TeamA), convey.ShouldEqual, 1)
			convey.So(len(split.TeamB), convey.ShouldEqual, 1)
			convey.So(model.CountTag(split.TeamA, model.TagGK), convey.ShouldEqual, 1)
			convey.So(model.CountTag(split.TeamB, model.TagGK), convey.ShouldEqual, 1)
		})

		convey.Convey("When the pool is odd the extra player joins the second keeper", func() {
			pool := []model.Player{
				makePlayer("GK1", 1200, model.TagGK),
				makePlayer("GK2", 1200, model.TagGK),
				makePlayer("P1", 1200),
				makePlayer("P2", 1200),
				makePlayer("P3", 1200),
			}

			split, _ := b.Split(pool)

			convey.So(split.SizeDiff(), convey.ShouldEqual, 1)
			convey.So(model.CountTag(split.TeamA, model.TagGK), convey.ShouldEqual, 1)
			convey.So(model.CountTag(split.TeamB, model.TagGK), convey.ShouldEqual, 1)
		})
	})

	convey.Convey("Given three goalkeepers the standard search applies", t, func() {
		b := balance.New()
		pool := []model.Player{
			makePlayer("GK1", 1200, model.TagGK),
			makePlayer("GK2", 1200, model.TagGK),
			makePlayer("GK3", 1200, model.TagGK),
			makePlayer("P1", 1200),
		}

		split, evaluated := b.Split(pool)

		convey.So(split, convey.ShouldNotBeNil)
		convey.So(evaluated, convey.ShouldEqual, 6) // C(4,2)
	})
}

func TestSplitOneKeeper(t *testing.T) {
	convey.Convey("Given a single goalkeeper", t, func() {
		pool := []model.Player{
			makePlayer("GK", 1200, model.TagGK),
			makePlayer("P1", 1300),
			makePlayer("P2", 1200),
			makePlayer("P3", 1100),
		}

		convey.Convey("When the keeper side is pinned to A", func() {
			b := balance.New(balance.WithKeeperSide(balance.SideA))

			split1, _ := b.Split(pool)
			split2, _ := b.Split(pool)

			convey.Convey("Then the keeper is on team A and the search is deterministic", func() {
				convey.So(model.CountTag(split1.TeamA, model.TagGK), convey.ShouldEqual, 1)
				convey.So(model.CountTag(split1.TeamB, model.TagGK), convey.ShouldEqual, 0)
				convey.So(names(split1.TeamA), convey.ShouldResemble, names(split2.TeamA))
				convey.So(names(split1.TeamB), convey.ShouldResemble, names(split2.TeamB))
			})
		})

		convey.Convey("When the keeper side is pinned to B", func() {
			b := balance.New(balance.WithKeeperSide(balance.SideB))

			split, _ := b.Split(pool)

			convey.So(model.CountTag(split.TeamA, model.TagGK), convey.ShouldEqual, 0)
			convey.So(model.CountTag(split.TeamB, model.TagGK), convey.ShouldEqual, 1)
			convey.So(split.SizeDiff(), convey.ShouldBeLessThanOrEqualTo, 1)
		})

		convey.Convey("When the side is chosen randomly", func() {
			b := balance.New(balance.WithRand(rand.New(rand.NewSource(7))))

			convey.Convey("Then exactly one team holds the keeper", func() {
				for i := 0; i < 10; i++ {
					split, _ := b.Split(pool)
					gkA := model.CountTag(split.TeamA, model.TagGK)
					gkB := model.CountTag(split.TeamB, model.TagGK)
					convey.So(gkA+gkB, convey.ShouldEqual, 1)
					convey.So(split.SizeDiff(), convey.ShouldBeLessThanOrEqualTo, 1)
				}
			})
		})

		convey.Convey("When the pool is only the keeper and one other", func() {
			b := balance.New(balance.WithKeeperSide(balance.SideB))
			split, _ := b.Split([]model.Player{
				makePlayer("GK", 1200, model.TagGK),
				makePlayer("P1", 1200),
			})

			convey.Convey("Then a valid one-a-side split is still produced", func() {
				convey.So(split, convey.ShouldNotBeNil)
				convey.So(len(split.TeamA), convey.ShouldEqual, 1)
				convey.So(len(split.TeamB), convey.ShouldEqual, 1)
				convey.So(model.CountTag(split.TeamB, model.TagGK), convey.ShouldEqual, 1)
			})
		})
	})
}

func TestSplitShuffle(t *testing.T) {
	convey.Convey("Given shuffle mode", t, func() {
		pool := []model.Player{
			makePlayer("a", 1400), makePlayer("b", 1300),
			makePlayer("c", 1200), makePlayer("d", 1100),
			makePlayer("e", 1250), makePlayer("f", 1150),
		}

		strict := balance.New()
		best, _ := strict.Split(pool)

		convey.Convey("Then picks stay within the near-optimal band", func() {
			b := balance.New(
				balance.WithShuffle(true),
				balance.WithRand(rand.New(rand.NewSource(42))),
			)
			threshold := best.Cost*1.1 + 1.0
			for i := 0; i < 25; i++ {
				split, _ := b.Split(pool)
				convey.So(split, convey.ShouldNotBeNil)
				convey.So(split.Cost, convey.ShouldBeLessThanOrEqualTo, threshold)
			}
		})

		convey.Convey("Then strict mode ignores the shuffle band", func() {
			split, _ := strict.Split(pool)
			convey.So(split.Cost, convey.ShouldAlmostEqual, best.Cost, 1e-9)
		})
	})
}

func TestSplitCustomWeights(t *testing.T) {
	convey.Convey("Given a league that zeroes the ATK weight", t, func() {
		b := balance.New(balance.WithTagWeights(map[model.Tag]float64{model.TagAtk: 0}))
		// Stacking both attackers on one side saves 50 rating points.
		pool := []model.Player{
			makePlayer("ATK1", 1150, model.TagAtk),
			makePlayer("ATK2", 1150, model.TagAtk),
			makePlayer("X", 1300),
			makePlayer("Y", 1000),
		}

		split, _ := b.Split(pool)

		convey.Convey("Then attacker imbalance no longer costs anything", func() {
			convey.So(split.EloDiff, convey.ShouldAlmostEqual, 0, 1e-9)
			convey.So(split.TagCosts[model.TagAtk], convey.ShouldEqual, 2)
		})
	})
}
