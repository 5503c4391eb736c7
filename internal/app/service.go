// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	repository "github.com/sundayfc/matchday/internal/adapters/repository"
	"github.com/sundayfc/matchday/internal/domain/balance"
	"github.com/sundayfc/matchday/internal/domain/dedupe"
	"github.com/sundayfc/matchday/internal/domain/model"
	"github.com/sundayfc/matchday/internal/domain/rating"
	"github.com/sundayfc/matchday/internal/domain/types"
	"github.com/sundayfc/matchday/pkg/logger"
	"github.com/sundayfc/matchday/pkg/metrics"
)

// PoolPlayer names a participant for balancing or match recording.
// Roster members are referenced by name alone; guests carry their own
// rating and tags and are never persisted.
type PoolPlayer struct {
	Name   string      `json:"name"`
	Rating float64     `json:"rating,omitempty"`
	Tags   []model.Tag `json:"tags,omitempty"`
	Guest  bool        `json:"guest,omitempty"`
}

// MatchSubmission describes a played match to be recorded.
type MatchSubmission struct {
	SubmissionID string       `json:"submission_id,omitempty"`
	Date         string       `json:"date"`
	TeamA        []PoolPlayer `json:"team_a"`
	TeamB        []PoolPlayer `json:"team_b"`
	ScoreA       int          `json:"score_a"`
	ScoreB       int          `json:"score_b"`
}

// BalanceResult carries a proposed split plus projected outcome.
type BalanceResult struct {
	Split      *model.TeamSplit  `json:"split"`
	Evaluated  int               `json:"evaluated"`
	Projection *types.Projection `json:"projection,omitempty"`
}

// Service implements the API dependencies for the matchday system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	deduper dedupe.Deduper

	// Configuration
	dbPath     string
	dedupeSize int
	tagWeights map[model.Tag]float64
	shuffle    bool

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize: 10_000,
		tagWeights: model.DefaultTagWeights(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting matchday service...")

	if s.store == nil {
		if s.dbPath != "" {
			store, err := repository.NewSQLiteStore(ctx, s.dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			s.store = store
			s.logger.Info(ctx, "using sqlite store", logger.String("path", s.dbPath))
		} else {
			s.store = repository.NewMemoryStore()
			s.logger.Info(ctx, "using in-memory store")
		}
	}
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)

	s.started = true
	s.logger.Info(ctx, "matchday service started",
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Bool("shuffle", s.shuffle),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping matchday service...")

	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "matchday service stopped")
}

// Roster returns all persisted players in insertion order.
func (s *Service) Roster(ctx context.Context) ([]model.Player, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	metrics.UpdateRosterSize(len(players))
	return players, nil
}

// AddPlayer registers a new roster member. A zero rating selects the
// default starting rating.
func (s *Service) AddPlayer(ctx context.Context, name string, ratingVal float64, tags []model.Tag) (model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, ErrEmptyName
	}
	if ratingVal == 0 {
		ratingVal = model.DefaultRating
	}

	p := model.Player{
		Name:   name,
		Rating: ratingVal,
		Tags:   model.NormalizeTags(tags),
	}
	if err := s.store.SavePlayer(ctx, p); err != nil {
		return model.Player{}, err
	}

	s.logger.Info(ctx, "player added",
		logger.String("name", p.Name),
		logger.Float64("rating", p.Rating),
	)
	metrics.UpdateRosterSize(s.store.Count(ctx))
	return p, nil
}

// UpdatePlayer replaces a roster member's rating and tags.
func (s *Service) UpdatePlayer(ctx context.Context, name string, ratingVal float64, tags []model.Tag) (model.Player, error) {
	existing, err := s.store.GetPlayer(ctx, name)
	if err != nil {
		return model.Player{}, err
	}
	if ratingVal == 0 {
		ratingVal = existing.Rating
	}
	norm := model.NormalizeTags(tags)
	if err := s.store.UpdatePlayer(ctx, existing.Name, ratingVal, norm, existing.MatchesPlayed); err != nil {
		return model.Player{}, err
	}
	existing.Rating = ratingVal
	existing.Tags = norm
	return existing, nil
}

// RemovePlayer deletes a roster member. Match history keeps its
// snapshots, so past records stay intact.
func (s *Service) RemovePlayer(ctx context.Context, name string) error {
	if err := s.store.DeletePlayer(ctx, name); err != nil {
		return err
	}
	s.logger.Info(ctx, "player removed", logger.String("name", name))
	metrics.UpdateRosterSize(s.store.Count(ctx))
	return nil
}

// resolvePool turns pool references into concrete players. Roster
// members are looked up by name; guests are built inline and flagged.
func (s *Service) resolvePool(ctx context.Context, pool []PoolPlayer) ([]model.Player, error) {
	seen := make(map[string]struct{}, len(pool))
	out := make([]model.Player, 0, len(pool))
	hasGuests := false

	for _, ref := range pool {
		name := strings.TrimSpace(ref.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		k := strings.ToLower(name)
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateInPool, name)
		}
		seen[k] = struct{}{}

		if ref.Guest {
			hasGuests = true
			r := ref.Rating
			if r == 0 {
				r = model.DefaultRating
			}
			out = append(out, model.Player{
				Name:   name,
				Rating: r,
				Tags:   model.NormalizeTags(ref.Tags),
				Guest:  true,
			})
			continue
		}

		p, err := s.store.GetPlayer(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", name, err)
		}
		out = append(out, p)
	}

	if hasGuests {
		metrics.RecordGuestPool()
	}
	return out, nil
}

// Balance splits the given pool into two teams. A nil split with no
// error means the pool was too small to divide.
func (s *Service) Balance(ctx context.Context, pool []PoolPlayer, shuffle *bool) (*BalanceResult, error) {
	players, err := s.resolvePool(ctx, pool)
	if err != nil {
		return nil, err
	}
	if len(players) > model.MaxPoolSize {
		return nil, fmt.Errorf("%w: %d players", ErrPoolTooLarge, len(players))
	}

	useShuffle := s.shuffle
	if shuffle != nil {
		useShuffle = *shuffle
	}

	metrics.RecordBalanceRequest()
	start := time.Now()
	b := balance.New(
		balance.WithTagWeights(s.tagWeights),
		balance.WithShuffle(useShuffle),
	)
	split, evaluated := b.Split(players)
	elapsed := time.Since(start)

	metrics.RecordBalanceDuration(float64(elapsed.Milliseconds()))
	metrics.RecordSplitsEvaluated(evaluated)

	res := &BalanceResult{Split: split, Evaluated: evaluated}
	if split != nil {
		proj := s.project(split.TeamA, split.TeamB)
		res.Projection = &proj
		s.logger.Debug(ctx, "pool balanced",
			logger.Int("pool", len(players)),
			logger.Int("evaluated", evaluated),
			logger.Float64("cost", split.Cost),
			logger.Float64("eloDiff", split.EloDiff),
		)
	}
	return res, nil
}

// Projection computes average ratings and expected scores for two
// concrete team rosters without recording anything.
func (s *Service) Projection(ctx context.Context, teamA, teamB []PoolPlayer) (types.Projection, error) {
	a, err := s.resolvePool(ctx, teamA)
	if err != nil {
		return types.Projection{}, err
	}
	b, err := s.resolvePool(ctx, teamB)
	if err != nil {
		return types.Projection{}, err
	}
	return s.project(a, b), nil
}

func (s *Service) project(teamA, teamB []model.Player) types.Projection {
	avgA := rating.Average(teamA)
	avgB := rating.Average(teamB)
	return types.Projection{
		AvgA:      avgA,
		AvgB:      avgB,
		ExpectedA: rating.ExpectedScore(avgA, avgB),
		ExpectedB: rating.ExpectedScore(avgB, avgA),
	}
}

// RecordMatch applies a match result to the roster and appends it to
// the history. The returned bool reports whether the submission was a
// duplicate (in which case nothing was recorded).
func (s *Service) RecordMatch(ctx context.Context, sub MatchSubmission) (model.Match, bool, error) {
	if len(sub.TeamA) == 0 || len(sub.TeamB) == 0 {
		return model.Match{}, false, fmt.Errorf("%w: both teams must have players", ErrInvalidMatch)
	}
	if sub.ScoreA < 0 || sub.ScoreB < 0 {
		return model.Match{}, false, fmt.Errorf("%w: scores must not be negative", ErrInvalidMatch)
	}

	id := sub.SubmissionID
	if id == "" {
		id = uuid.NewString()
	}
	if s.SeenAndRecord(ctx, id) {
		s.logger.Debug(ctx, "duplicate submission ignored", logger.String("submissionID", id))
		return model.Match{}, true, nil
	}

	match, err := s.applyMatch(ctx, id, sub)
	if err != nil {
		// Allow the caller to retry with the same submission ID.
		s.Unrecord(ctx, id)
		return model.Match{}, false, err
	}
	return match, false, nil
}

func (s *Service) applyMatch(ctx context.Context, id string, sub MatchSubmission) (model.Match, error) {
	teamA, err := s.resolvePool(ctx, sub.TeamA)
	if err != nil {
		return model.Match{}, err
	}
	teamB, err := s.resolvePool(ctx, sub.TeamB)
	if err != nil {
		return model.Match{}, err
	}
	if overlap := poolOverlap(teamA, teamB); overlap != "" {
		return model.Match{}, fmt.Errorf("%w: %s appears on both teams", ErrInvalidMatch, overlap)
	}

	date := sub.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	changes := rating.Changes(teamA, teamB, sub.ScoreA, sub.ScoreB)

	match := model.Match{
		ID:        id,
		Date:      date,
		TeamA:     names(teamA),
		TeamB:     names(teamB),
		ScoreA:    sub.ScoreA,
		ScoreB:    sub.ScoreB,
		SnapshotA: snapshot(teamA, changes),
		SnapshotB: snapshot(teamB, changes),
	}

	updates := 0
	for _, p := range append(append([]model.Player{}, teamA...), teamB...) {
		if p.Guest {
			continue
		}
		delta := changes[p.Name]
		if err := s.store.UpdateRating(ctx, p.Name, p.Rating+delta, p.MatchesPlayed+1); err != nil {
			return model.Match{}, fmt.Errorf("apply rating for %q: %w", p.Name, err)
		}
		updates++
	}

	if err := s.store.SaveMatch(ctx, match); err != nil {
		return model.Match{}, fmt.Errorf("save match: %w", err)
	}

	metrics.RecordMatchRecorded()
	metrics.RecordRatingUpdates(updates)
	if matches, err := s.store.ListMatches(ctx); err == nil {
		metrics.UpdateMatchCount(len(matches))
	}
	s.logger.Info(ctx, "match recorded",
		logger.String("id", match.ID),
		logger.String("date", match.Date),
		logger.Int("scoreA", match.ScoreA),
		logger.Int("scoreB", match.ScoreB),
		logger.Int("ratingUpdates", updates),
	)
	return match, nil
}

// Matches returns the recorded history in submission order.
func (s *Service) Matches(ctx context.Context) ([]model.Match, error) {
	return s.store.ListMatches(ctx)
}

// RatingHistory reconstructs a player's rating series from match
// snapshots: the rating before their first match, then the rating
// after each match they played.
func (s *Service) RatingHistory(ctx context.Context, name string) ([]types.RatingPoint, error) {
	p, err := s.store.GetPlayer(ctx, name)
	if err != nil {
		return nil, err
	}

	matches, err := s.store.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	var points []types.RatingPoint
	for _, m := range matches {
		snap, ok := m.Snapshot(p.Name)
		if !ok {
			continue
		}
		if len(points) == 0 {
			points = append(points, types.RatingPoint{Date: "", Rating: snap.Before})
		}
		points = append(points, types.RatingPoint{Date: m.Date, Rating: snap.After()})
	}
	if len(points) == 0 {
		points = append(points, types.RatingPoint{Date: "", Rating: p.Rating})
	}
	return points, nil
}

// TopN returns the top N leaderboard entries ordered by rating.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if n <= 0 {
		return nil, repository.ErrInvalidLimit
	}

	entries, err := s.leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

// Rank returns the leaderboard entry for a single player.
func (s *Service) Rank(ctx context.Context, name string) (types.Entry, error) {
	p, err := s.store.GetPlayer(ctx, name)
	if err != nil {
		return types.Entry{}, err
	}

	entries, err := s.leaderboard(ctx)
	if err != nil {
		return types.Entry{}, err
	}
	for _, e := range entries {
		if e.Name == p.Name {
			return e, nil
		}
	}
	return types.Entry{}, repository.ErrNotFound
}

// leaderboard lists all players sorted by rating descending, names
// breaking ties for a stable order.
func (s *Service) leaderboard(ctx context.Context) ([]types.Entry, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].Rating != players[j].Rating {
			return players[i].Rating > players[j].Rating
		}
		return players[i].Name < players[j].Name
	})

	entries := make([]types.Entry, len(players))
	for i, p := range players {
		entries[i] = types.Entry{
			Rank:    i + 1,
			Name:    p.Name,
			Rating:  p.Rating,
			Matches: p.MatchesPlayed,
		}
	}
	return entries, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":    s.started,
		"dedupeSize": s.dedupeSize,
		"shuffle":    s.shuffle,
	}

	if s.started {
		rosterSize := s.store.Count(ctx)
		stats["rosterSize"] = rosterSize
		stats["trackedSubmissions"] = s.deduper.Size()

		if matches, err := s.store.ListMatches(ctx); err == nil {
			stats["matchCount"] = len(matches)
			metrics.UpdateMatchCount(len(matches))
		}
		metrics.UpdateRosterSize(rosterSize)
	}

	return stats
}

// SeenAndRecord atomically checks if a submission id was seen and records it
// if not. Returns true if the submission was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordDuplicateSubmission()
	}
	return seen
}

// Unrecord removes a submission ID from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of tracked submission IDs.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

func names(players []model.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func snapshot(team []model.Player, changes map[string]float64) map[string]model.RatingSnapshot {
	out := make(map[string]model.RatingSnapshot, len(team))
	for _, p := range team {
		if p.Guest {
			continue
		}
		out[p.Name] = model.RatingSnapshot{
			Before: p.Rating,
			Delta:  changes[p.Name],
		}
	}
	return out
}

func poolOverlap(teamA, teamB []model.Player) string {
	inA := make(map[string]struct{}, len(teamA))
	for _, p := range teamA {
		inA[strings.ToLower(p.Name)] = struct{}{}
	}
	for _, p := range teamB {
		if _, ok := inA[strings.ToLower(p.Name)]; ok {
			return p.Name
		}
	}
	return ""
}
