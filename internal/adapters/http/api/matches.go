// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/sundayfc/matchday/internal/app"
	"github.com/sundayfc/matchday/internal/domain/model"
)

// MatchDependencies defines the interface for match recording.
type MatchDependencies interface {
	RecordMatch(ctx context.Context, sub service.MatchSubmission) (model.Match, bool, error)
	Matches(ctx context.Context) ([]model.Match, error)
}

// MatchesHandler handles match requests.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

type matchResponse struct {
	Status    string       `json:"status"`
	Duplicate bool         `json:"duplicate"`
	Match     *model.Match `json:"match,omitempty"`
}

// HandleMatches handles GET /matches and POST /matches requests.
func (h *MatchesHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.matches"
	switch r.Method {
	case http.MethodGet:
		matches, err := h.deps.Matches(r.Context())
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		if matches == nil {
			matches = []model.Match{}
		}
		writeJSON(w, http.StatusOK, matches)
	case http.MethodPost:
		var sub service.MatchSubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if len(sub.TeamA) == 0 || len(sub.TeamB) == 0 {
			writeError(w, http.StatusBadRequest, "bad_request",
				WrapKind(op, ErrBadRequest, errors.New("both teams must have players")))
			return
		}

		match, duplicate, err := h.deps.RecordMatch(r.Context(), sub)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		if duplicate {
			writeJSON(w, http.StatusOK, matchResponse{Status: "duplicate", Duplicate: true})
			return
		}
		writeJSON(w, http.StatusCreated, matchResponse{Status: "recorded", Match: &match})
	default:
		http.NotFound(w, r)
	}
}
