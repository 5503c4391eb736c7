package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sundayfc/matchday/internal/domain/model"
	"github.com/sundayfc/matchday/pkg/metrics"
)

// MemoryStore implements Store with in-memory maps. It is the default
// backend when no database path is configured, and the backend used by
// tests.
type MemoryStore struct {
	mu sync.RWMutex
	// players keyed by lower-cased name; order preserves insertion.
	players map[string]model.Player
	order   []string
	matches []model.Match
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players: make(map[string]model.Player),
	}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ListPlayers returns the roster in insertion order.
func (s *MemoryStore) ListPlayers(_ context.Context) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	out := make([]model.Player, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.players[k])
	}
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	return out, nil
}

// GetPlayer looks a player up by name, ignoring case.
func (s *MemoryStore) GetPlayer(_ context.Context, name string) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[key(name)]
	if !ok {
		return model.Player{}, ErrNotFound
	}
	return p, nil
}

// SavePlayer adds a new roster member.
func (s *MemoryStore) SavePlayer(_ context.Context, p model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(p.Name)
	if _, ok := s.players[k]; ok {
		return ErrExists
	}
	s.players[k] = p
	s.order = append(s.order, k)
	return nil
}

// UpdatePlayer replaces rating, tags and match count.
func (s *MemoryStore) UpdatePlayer(_ context.Context, name string, ratingVal float64, tags []model.Tag, matchesPlayed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(name)
	p, ok := s.players[k]
	if !ok {
		return ErrNotFound
	}
	p.Rating = ratingVal
	p.Tags = tags
	p.MatchesPlayed = matchesPlayed
	s.players[k] = p
	return nil
}

// UpdateRating applies a post-match rating and match count.
func (s *MemoryStore) UpdateRating(_ context.Context, name string, ratingVal float64, matchesPlayed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	k := key(name)
	p, ok := s.players[k]
	if !ok {
		return ErrNotFound
	}
	p.Rating = ratingVal
	p.MatchesPlayed = matchesPlayed
	s.players[k] = p
	metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// DeletePlayer removes a roster member.
func (s *MemoryStore) DeletePlayer(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(name)
	if _, ok := s.players[k]; !ok {
		return ErrNotFound
	}
	delete(s.players, k)
	for i, v := range s.order {
		if v == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListMatches returns the history in insertion order.
func (s *MemoryStore) ListMatches(_ context.Context) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Match, len(s.matches))
	copy(out, s.matches)
	return out, nil
}

// SaveMatch appends an immutable match record.
func (s *MemoryStore) SaveMatch(_ context.Context, m model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches = append(s.matches, m)
	return nil
}

// Count returns the roster size.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
