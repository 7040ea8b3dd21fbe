package services

import (
	"context"
	"fmt"
	"time"

	"tp-server/crowd"
	"tp-server/dao/redis"
	"tp-server/logger"
	"tp-server/models"
	"tp-server/planner"
)

// PlanService builds trip itineraries over stored temples.
type PlanService struct {
	templeDao     *redis.RedisTempleDAO
	templeService *TempleService
}

func NewPlanService(templeDao *redis.RedisTempleDAO, templeService *TempleService) *PlanService {
	return &PlanService{templeDao: templeDao, templeService: templeService}
}

// PlanTrip orders the given temples for a trip from source. Every id must
// exist; crowd estimates are taken at instant at.
func (ps *PlanService) PlanTrip(ctx context.Context, source string, templeIDs []string, preference string, at time.Time) (*models.TripPlan, error) {
	pref, err := planner.ParsePreference(preference)
	if err != nil {
		return nil, err
	}
	if len(templeIDs) == 0 {
		return nil, crowd.InvalidInputf("at least one temple id is required")
	}

	temples, missing, err := ps.templeDao.GetTemplesByIDs(templeIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", redis.ErrTempleNotFound, missing)
	}

	byID := make(map[string]models.Temple, len(temples))
	stops := make([]planner.Stop, 0, len(temples))
	for _, t := range temples {
		byID[t.ID] = t
		stop := planner.Stop{Venue: t.ToVenue()}
		est, err := ps.templeService.CurrentCrowd(ctx, t, at)
		if err != nil {
			return nil, err
		}
		pct := est.Percentage
		stop.CrowdPercentage = &pct
		stops = append(stops, stop)
	}

	itinerary, err := planner.Optimize(source, stops, pref)
	if err != nil {
		return nil, err
	}
	logger.Info("[PlanService] Planned trip",
		"source", source, "preference", string(pref), "stops", len(itinerary.Stops),
		"totalDistanceKm", itinerary.Stats.TotalDistanceKm)
	return toTripPlan(itinerary, byID), nil
}

// toTripPlan swaps the engine's venues back for the stored temple records.
func toTripPlan(it *planner.Itinerary, byID map[string]models.Temple) *models.TripPlan {
	plan := &models.TripPlan{
		Stops: make([]models.PlanStop, len(it.Stops)),
		Stats: it.Stats,
	}
	for i, s := range it.Stops {
		plan.Stops[i] = models.PlanStop{
			Temple:          byID[s.Venue.ID],
			CrowdPercentage: s.CrowdPercentage,
			TransportTo:     s.TransportTo,
		}
	}
	return plan
}
