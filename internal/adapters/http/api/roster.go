// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sundayfc/matchday/internal/domain/model"
)

// RosterDependencies defines the interface for roster operations.
type RosterDependencies interface {
	Roster(ctx context.Context) ([]model.Player, error)
	AddPlayer(ctx context.Context, name string, rating float64, tags []model.Tag) (model.Player, error)
	UpdatePlayer(ctx context.Context, name string, rating float64, tags []model.Tag) (model.Player, error)
	RemovePlayer(ctx context.Context, name string) error
}

// RosterHandler handles roster requests.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// playerRequest mirrors the OpenAPI schema for player writes.
type playerRequest struct {
	Name   string   `json:"name"`
	Rating float64  `json:"rating,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

func (p playerRequest) tags() []model.Tag {
	out := make([]model.Tag, 0, len(p.Tags))
	for _, t := range p.Tags {
		out = append(out, model.Tag(t))
	}
	return out
}

// HandlePlayers handles GET /players and POST /players requests.
func (h *RosterHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.players"
	switch r.Method {
	case http.MethodGet:
		players, err := h.deps.Roster(r.Context())
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		if players == nil {
			players = []model.Player{}
		}
		writeJSON(w, http.StatusOK, players)
	case http.MethodPost:
		var req playerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		p, err := h.deps.AddPlayer(r.Context(), req.Name, req.Rating, req.tags())
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	default:
		http.NotFound(w, r)
	}
}

// HandlePlayer handles GET/PUT/DELETE /players/{name} requests.
func (h *RosterHandler) HandlePlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.player"
	name := strings.TrimPrefix(r.URL.Path, "/players/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req playerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		p, err := h.deps.UpdatePlayer(r.Context(), name, req.Rating, req.tags())
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if err := h.deps.RemovePlayer(r.Context(), name); err != nil {
			writeDomainError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}
