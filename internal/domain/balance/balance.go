// Package balance implements the exhaustive team-balancing search.
//
// Given a pool of players it enumerates two-team assignments, scores each
// with a weighted cost function and returns the cheapest split. Goalkeeper
// placement is handled ahead of the general search: two keepers are forced
// onto opposite teams, a single keeper is assigned a random side.
package balance

import (
	"math"
	"math/rand"
	"time"

	"github.com/sundayfc/matchday/internal/domain/model"
	"github.com/sundayfc/matchday/internal/domain/rating"
)

// Side identifies which team receives the lone goalkeeper.
type Side int

// Keeper side values.
const (
	// SideAuto lets the balancer pick a side at random, once per search.
	SideAuto Side = iota
	SideA
	SideB
)

// shuffleSlack is the relative cost slack used when picking a random
// near-optimal split instead of the strict argmin.
const shuffleSlack = 0.1

// Balancer searches player-to-team assignments for the cheapest split.
// The zero value is not usable; construct with New.
type Balancer struct {
	weights    map[model.Tag]float64
	rng        *rand.Rand
	keeperSide Side
	shuffle    bool
}

// New constructs a Balancer with default league weights and a time-seeded
// random source.
func New(opts ...Option) *Balancer {
	b := &Balancer{
		weights:    model.DefaultTagWeights(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // placement reroll, not security
		keeperSide: SideAuto,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Split finds the best two-team assignment for the pool. It returns nil when
// fewer than two players are supplied; for any larger pool some split is
// always returned. The second return value is the number of candidate splits
// evaluated.
//
// Team sizes differ by at most one. For odd pools team B carries the extra
// player; warning the user about odd pools is the caller's concern.
func (b *Balancer) Split(players []model.Player) (*model.TeamSplit, int) {
	if len(players) < 2 {
		return nil, 0
	}

	teamSize := len(players) / 2

	var gks, fielders []model.Player
	for _, p := range players {
		if p.HasTag(model.TagGK) {
			gks = append(gks, p)
		} else {
			fielders = append(fielders, p)
		}
	}

	switch len(gks) {
	case 2:
		remaining := teamSize - 1
		if remaining >= 0 && len(fielders) >= remaining*2 {
			return b.pick(b.twoKeeperSearch(gks, fielders, remaining))
		}
		// Not enough field players to fill both sides; the keepers are
		// treated as ordinary players and may end up together.
	case 1:
		return b.pick(b.oneKeeperSearch(gks[0], fielders, teamSize))
	}

	return b.pick(b.standardSearch(players, teamSize))
}

// twoKeeperSearch forces one keeper per team and enumerates every way to
// fill the rest of team A from the field players.
func (b *Balancer) twoKeeperSearch(gks, fielders []model.Player, remaining int) *collector {
	c := b.newCollector()
	gkA, gkB := gks[0], gks[1]

	forEachCombination(len(fielders), remaining, func(combo []int) {
		selected, rest := partition(fielders, combo)
		teamA := append([]model.Player{gkA}, selected...)
		teamB := append([]model.Player{gkB}, rest...)
		c.add(b.score(teamA, teamB))
	})

	return c
}

// oneKeeperSearch assigns the keeper to one side and enumerates fills for
// the keeper-less remainder. The combination size depends on which side the
// keeper landed on so the candidate set is never empty.
func (b *Balancer) oneKeeperSearch(gk model.Player, fielders []model.Player, teamSize int) *collector {
	c := b.newCollector()

	side := b.keeperSide
	if side == SideAuto {
		if b.rng.Intn(2) == 0 {
			side = SideA
		} else {
			side = SideB
		}
	}

	comboSize := teamSize - 1
	if side == SideB {
		comboSize = teamSize
	}

	forEachCombination(len(fielders), comboSize, func(combo []int) {
		selected, rest := partition(fielders, combo)

		var teamA, teamB []model.Player
		if side == SideA {
			teamA = append([]model.Player{gk}, selected...)
			teamB = rest
		} else {
			teamA = selected
			teamB = append([]model.Player{gk}, rest...)
		}

		if abs(len(teamA)-len(teamB)) > 1 {
			return
		}
		c.add(b.score(teamA, teamB))
	})

	return c
}

// standardSearch enumerates every way to choose team A from the whole pool.
func (b *Balancer) standardSearch(players []model.Player, teamSize int) *collector {
	c := b.newCollector()

	forEachCombination(len(players), teamSize, func(combo []int) {
		teamA, teamB := partition(players, combo)
		c.add(b.score(teamA, teamB))
	})

	return c
}

// score computes the cost breakdown of a candidate split.
func (b *Balancer) score(teamA, teamB []model.Player) model.TeamSplit {
	eloDiff := math.Abs(rating.Average(teamA) - rating.Average(teamB))

	tagCosts := make(map[model.Tag]int, len(model.WeightedTags))
	cost := eloDiff
	for _, tag := range model.WeightedTags {
		diff := model.CountTag(teamA, tag) - model.CountTag(teamB, tag)
		if diff < 0 {
			diff = -diff
		}
		tagCosts[tag] = diff
		cost += float64(diff) * b.weights[tag]
	}

	return model.TeamSplit{
		TeamA:    teamA,
		TeamB:    teamB,
		Cost:     cost,
		EloDiff:  eloDiff,
		TagCosts: tagCosts,
	}
}

// pick resolves a finished search to its final split: the strict argmin, or
// in shuffle mode a uniform choice among splits within shuffleSlack of the
// optimum (plus one, so zero-cost pools still reroll).
func (b *Balancer) pick(c *collector) (*model.TeamSplit, int) {
	if c.best == nil {
		return nil, c.count
	}

	if b.shuffle && len(c.all) > 0 {
		threshold := c.best.Cost*(1+shuffleSlack) + 1.0
		good := make([]model.TeamSplit, 0, len(c.all))
		for _, s := range c.all {
			if s.Cost <= threshold {
				good = append(good, s)
			}
		}
		if len(good) > 0 {
			chosen := good[b.rng.Intn(len(good))]
			return &chosen, c.count
		}
	}

	return c.best, c.count
}

// collector tracks the running argmin over enumerated candidates. The first
// strictly cheaper split wins, so ties resolve by enumeration order. All
// candidates are retained only when shuffle mode needs them.
type collector struct {
	best  *model.TeamSplit
	all   []model.TeamSplit
	count int
	keep  bool
}

func (b *Balancer) newCollector() *collector {
	return &collector{keep: b.shuffle}
}

func (c *collector) add(s model.TeamSplit) {
	c.count++
	if c.best == nil || s.Cost < c.best.Cost {
		cp := s
		c.best = &cp
	}
	if c.keep {
		c.all = append(c.all, s)
	}
}

// partition splits players into those selected by the sorted index combo
// and the remainder, preserving pool order in both halves.
func partition(players []model.Player, combo []int) (selected, rest []model.Player) {
	selected = make([]model.Player, 0, len(combo))
	rest = make([]model.Player, 0, len(players)-len(combo))
	j := 0
	for i, p := range players {
		if j < len(combo) && combo[j] == i {
			selected = append(selected, p)
			j++
		} else {
			rest = append(rest, p)
		}
	}
	return selected, rest
}

// forEachCombination enumerates all k-element index subsets of [0, n) in
// lexicographic order. The combo slice is reused between calls.
func forEachCombination(n, k int, fn func(combo []int)) {
	if k < 0 || k > n {
		return
	}
	combo := make([]int, k)
	for i := range combo {
		combo[i] = i
	}
	for {
		fn(combo)
		i := k - 1
		for i >= 0 && combo[i] == i+n-k {
			i--
		}
		if i < 0 {
			return
		}
		combo[i]++
		for j := i + 1; j < k; j++ {
			combo[j] = combo[j-1] + 1
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
