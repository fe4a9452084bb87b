package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	planner   Planner
	maxTrials int
}

func NewHandler(planner Planner, maxTrials int) *Handler {
	if maxTrials <= 0 || maxTrials > calculation.MaxTrials {
		maxTrials = calculation.MaxTrials
	}
	return &Handler{planner: planner, maxTrials: maxTrials}
}

type errorResponse struct {
	Error string `json:"error"`
}

type scenarioBody struct {
	domain.ScenarioRequest
	Seed int64 `json:"seed"`
}

type trialsBody struct {
	domain.ScenarioRequest
	Trials int   `json:"trials"`
	Seed   int64 `json:"seed"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListRiskProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, domain.RiskProfiles())
}

func (h *Handler) HealthScore(w http.ResponseWriter, r *http.Request) {
	var snapshot domain.FinancialSnapshot
	if !decodeBody(w, r, &snapshot) {
		return
	}
	assessment, err := h.planner.HealthScore(snapshot)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, assessment)
}

func (h *Handler) GoalPlan(w http.ResponseWriter, r *http.Request) {
	var req domain.GoalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	plan, err := h.planner.GoalPlan(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, plan)
}

func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	var body scenarioBody
	if !decodeBody(w, r, &body) {
		return
	}
	comparison, err := h.planner.SeededScenarios(body.ScenarioRequest, body.Seed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, comparison)
}

func (h *Handler) Trials(w http.ResponseWriter, r *http.Request) {
	var body trialsBody
	if !decodeBody(w, r, &body) {
		return
	}

	n := body.Trials
	if n == 0 {
		n = min(calculation.DefaultTrials, h.maxTrials)
	}
	if n < 0 || n > h.maxTrials {
		writeError(w, r, domain.NewInvalidInputError("trials",
			fmt.Sprintf("must be between 1 and %d (got %d)", h.maxTrials, body.Trials)))
		return
	}

	result, err := h.planner.Trials(r.Context(), body.ScenarioRequest, calculation.TrialConfig{
		NumTrials: n,
		Seed:      body.Seed,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) Retirement(w http.ResponseWriter, r *http.Request) {
	var profile domain.WealthProfile
	if !decodeBody(w, r, &profile) {
		return
	}
	plan, err := h.planner.Retirement(profile)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, plan)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("rejected request body")
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())
	if errors.Is(err, domain.ErrInvalidInput) {
		logger.Debug().Err(err).Msg("invalid input")
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if errors.Is(err, context.Canceled) {
		logger.Debug().Err(err).Msg("request cancelled")
		writeJSON(w, r, http.StatusServiceUnavailable, errorResponse{Error: "request cancelled"})
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		logger.Warn().Err(err).Msg("calculation timed out")
		writeJSON(w, r, http.StatusGatewayTimeout, errorResponse{Error: "calculation timed out"})
		return
	}
	logger.Error().Err(err).Msg("calculation failed")
	writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
