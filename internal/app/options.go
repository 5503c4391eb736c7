package service

import (
	"strings"

	repository "github.com/sundayfc/matchday/internal/adapters/repository"
	"github.com/sundayfc/matchday/internal/domain/model"
	"github.com/sundayfc/matchday/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a pre-built store, bypassing the DBPath selection.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDBPath selects the sqlite backend at the given path. Empty keeps
// the in-memory store.
func WithDBPath(path string) Option {
	return func(s *Service) {
		s.dbPath = path
	}
}

// WithDedupeSize sets the size of the submission deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTagWeights overrides balancing penalty weights per tag name.
// Unknown tags are accepted; negative weights are ignored.
func WithTagWeights(weights map[string]float64) Option {
	return func(s *Service) {
		for name, w := range weights {
			if w < 0 {
				continue
			}
			s.tagWeights[model.Tag(strings.ToUpper(name))] = w
		}
	}
}

// WithShuffle enables randomised selection among near-optimal splits
// by default; per-request flags still override it.
func WithShuffle(enabled bool) Option {
	return func(s *Service) {
		s.shuffle = enabled
	}
}
