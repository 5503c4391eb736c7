// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/sundayfc/matchday/internal/adapters/repository"
	service "github.com/sundayfc/matchday/internal/app"
	"github.com/sundayfc/matchday/internal/domain/model"
	"github.com/sundayfc/matchday/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Roster operations.
	Roster(ctx context.Context) ([]model.Player, error)
	AddPlayer(ctx context.Context, name string, rating float64, tags []model.Tag) (model.Player, error)
	UpdatePlayer(ctx context.Context, name string, rating float64, tags []model.Tag) (model.Player, error)
	RemovePlayer(ctx context.Context, name string) error

	// Balancing and projection.
	Balance(ctx context.Context, pool []service.PoolPlayer, shuffle *bool) (*service.BalanceResult, error)
	Projection(ctx context.Context, teamA, teamB []service.PoolPlayer) (types.Projection, error)

	// Match recording and history.
	RecordMatch(ctx context.Context, sub service.MatchSubmission) (model.Match, bool, error)
	Matches(ctx context.Context) ([]model.Match, error)
	RatingHistory(ctx context.Context, name string) ([]types.RatingPoint, error)

	// Leaderboard reads.
	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, name string) (Entry, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	rosterHandler      *RosterHandler
	balanceHandler     *BalanceHandler
	matchesHandler     *MatchesHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	historyHandler     *HistoryHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		rosterHandler:      NewRosterHandler(deps),
		balanceHandler:     NewBalanceHandler(deps),
		matchesHandler:     NewMatchesHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		rankHandler:        NewRankHandler(deps),
		historyHandler:     NewHistoryHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.rosterHandler.HandlePlayers, "players"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.rosterHandler.HandlePlayer, "player"))
	mux.HandleFunc("/balance", MetricsMiddleware(s.balanceHandler.HandleBalance, "balance"))
	mux.HandleFunc("/projection", MetricsMiddleware(s.balanceHandler.HandleProjection, "projection"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandleMatches, "matches"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/history/", MetricsMiddleware(s.historyHandler.HandleGetHistory, "history"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps known upstream errors to client status codes,
// defaulting to 500.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrExists):
		writeError(w, http.StatusConflict, "already_exists", err)
	case errors.Is(err, repository.ErrInvalidLimit),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrDuplicateInPool),
		errors.Is(err, service.ErrPoolTooLarge),
		errors.Is(err, service.ErrInvalidMatch):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
