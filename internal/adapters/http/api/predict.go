// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/okian/marquee/internal/domain/model"
)

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps Dependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps Dependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// predictRequest mirrors the prediction form fields.
type predictRequest struct {
	BudgetMillions float64 `json:"budget_millions"`
	RuntimeMinutes float64 `json:"runtime_minutes"`
	IsFranchise    bool    `json:"is_franchise"`
	Season         string  `json:"season"`
	PrimaryGenre   string  `json:"primary_genre"`
	DirectorScore  float64 `json:"director_score"`
	ActorScore     float64 `json:"actor_score"`
}

// validate rejects values no movie can have. A season or genre label
// the schema does not know is deliberately NOT rejected here; that is
// a supported degraded case handled downstream.
func (p predictRequest) validate() error {
	switch {
	case p.BudgetMillions <= 0:
		return errors.New("budget_millions must be positive")
	case p.RuntimeMinutes <= 0:
		return errors.New("runtime_minutes must be positive")
	case p.DirectorScore < 0:
		return errors.New("director_score must not be negative")
	case p.ActorScore < 0:
		return errors.New("actor_score must not be negative")
	case strings.TrimSpace(p.Season) == "":
		return errors.New("missing season")
	case strings.TrimSpace(p.PrimaryGenre) == "":
		return errors.New("missing primary_genre")
	}
	return nil
}

type predictResponse struct {
	RequestID                string  `json:"request_id"`
	PredictedRevenue         float64 `json:"predicted_revenue"`
	PredictedRevenueMillions float64 `json:"predicted_revenue_millions"`
	SchemaHash               string  `json:"schema_hash"`
}

// HandlePredict handles POST /predict requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	out, err := h.deps.Predict(r.Context(), model.LiveInput{
		BudgetMillions: req.BudgetMillions,
		Runtime:        req.RuntimeMinutes,
		IsFranchise:    req.IsFranchise,
		Season:         req.Season,
		PrimaryGenre:   req.PrimaryGenre,
		DirectorScore:  req.DirectorScore,
		ActorScore:     req.ActorScore,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, predictResponse{
		RequestID:                out.RequestID,
		PredictedRevenue:         out.Revenue,
		PredictedRevenueMillions: out.RevenueMillions,
		SchemaHash:               out.SchemaHash,
	})
}
