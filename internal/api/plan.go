package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/morlabs/nightplanner/internal/metrics"
	"github.com/morlabs/nightplanner/internal/planner"
)

const maxPlanBodyBytes = 64 << 10

// planRequest is the body for POST /api/v1/plan.
type planRequest struct {
	Date    string          `json:"date"`
	Profile planner.Profile `json:"profile"`
}

// handlePlan handles POST /api/v1/plan
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	body := http.MaxBytesReader(w, r.Body, maxPlanBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	plan, err := s.plan.BuildPlan(r.Context(), req.Date, req.Profile)
	if err != nil {
		if errors.Is(err, planner.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}
		if errors.Is(err, planner.ErrInvalidProfile) {
			writeError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error", err)
		return
	}

	if plan.Candidates == 0 {
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("no events found for %s", plan.Date), nil)
		return
	}

	metrics.PlansServed.Inc()
	writeJSON(w, http.StatusOK, plan)
}
