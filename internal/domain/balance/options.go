package balance

import (
	"math/rand"

	"github.com/sundayfc/matchday/internal/domain/model"
)

// Option applies a configuration option to the Balancer.
type Option func(*Balancer)

// WithTagWeights overrides the balancing weight per tag. Unknown tags are
// ignored by the cost function; missing tags keep their default weight.
func WithTagWeights(weights map[model.Tag]float64) Option {
	return func(b *Balancer) {
		for tag, w := range weights {
			if w >= 0 {
				b.weights[tag] = w
			}
		}
	}
}

// WithRand sets the random source used for the single-keeper side choice
// and for shuffle picks. Tests supply a seeded source for determinism.
func WithRand(rng *rand.Rand) Option {
	return func(b *Balancer) {
		if rng != nil {
			b.rng = rng
		}
	}
}

// WithKeeperSide pins the side that receives a lone goalkeeper, removing
// the only random decision in the search.
func WithKeeperSide(side Side) Option {
	return func(b *Balancer) {
		b.keeperSide = side
	}
}

// WithShuffle enables picking uniformly among near-optimal splits instead
// of the strict argmin. This is the re-roll behavior.
func WithShuffle(shuffle bool) Option {
	return func(b *Balancer) {
		b.shuffle = shuffle
	}
}
