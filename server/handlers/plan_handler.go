package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tp-server/models"
	"tp-server/planner"
)

// PlanService is what the plan endpoint needs from the service layer.
type PlanService interface {
	PlanTrip(ctx context.Context, source string, templeIDs []string, preference string, at time.Time) (*models.TripPlan, error)
}

type PlanHandler struct {
	planService PlanService
	now         Clock
}

func NewPlanHandler(planService PlanService, now Clock) *PlanHandler {
	return &PlanHandler{planService: planService, now: now}
}

// OptimizePlan handles POST /v1/plans/optimize
func (h *PlanHandler) OptimizePlan(w http.ResponseWriter, r *http.Request) {
	var req models.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Source == "" || len(req.TempleIDs) == 0 {
		writeError(w, http.StatusBadRequest, "Missing required fields: source, templeIds")
		return
	}
	if req.Preference == "" {
		req.Preference = string(planner.PreferCrowd)
	}

	itinerary, err := h.planService.PlanTrip(r.Context(), req.Source, req.TempleIDs, req.Preference, h.now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itinerary)
}
