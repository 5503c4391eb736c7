// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/sundayfc/matchday/internal/app"
	"github.com/sundayfc/matchday/internal/domain/types"
)

// BalanceDependencies defines the interface for balancing operations.
type BalanceDependencies interface {
	Balance(ctx context.Context, pool []service.PoolPlayer, shuffle *bool) (*service.BalanceResult, error)
	Projection(ctx context.Context, teamA, teamB []service.PoolPlayer) (types.Projection, error)
}

// BalanceHandler handles balance and projection requests.
type BalanceHandler struct {
	deps BalanceDependencies
}

// NewBalanceHandler creates a new balance handler.
func NewBalanceHandler(deps BalanceDependencies) *BalanceHandler {
	return &BalanceHandler{deps: deps}
}

// balanceRequest mirrors the OpenAPI schema for POST /balance.
type balanceRequest struct {
	Pool    []service.PoolPlayer `json:"pool"`
	Shuffle *bool                `json:"shuffle,omitempty"`
}

func (b balanceRequest) validate() error {
	if len(b.Pool) == 0 {
		return errors.New("missing pool")
	}
	return nil
}

// projectionRequest mirrors the OpenAPI schema for POST /projection.
type projectionRequest struct {
	TeamA []service.PoolPlayer `json:"team_a"`
	TeamB []service.PoolPlayer `json:"team_b"`
}

// HandleBalance handles POST /balance requests.
func (h *BalanceHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	const op = "api.balance"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req balanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Balance(r.Context(), req.Pool, req.Shuffle)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleProjection handles POST /projection requests.
func (h *BalanceHandler) HandleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "api.projection"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req projectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.TeamA) == 0 || len(req.TeamB) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	proj, err := h.deps.Projection(r.Context(), req.TeamA, req.TeamB)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}
