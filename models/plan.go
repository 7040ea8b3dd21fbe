package models

import "tp-server/planner"

// PlanRequest is the body of POST /v1/plans/optimize.
type PlanRequest struct {
	Source     string   `json:"source"`
	TempleIDs  []string `json:"templeIds"`
	Preference string   `json:"preference"`
}

// PlanStop is one visit in a trip plan, carrying the full temple record.
type PlanStop struct {
	Temple          Temple       `json:"temple"`
	CrowdPercentage *int         `json:"crowdPercentage,omitempty"`
	TransportTo     *planner.Leg `json:"transportTo,omitempty"`
}

// TripPlan is the response of POST /v1/plans/optimize.
type TripPlan struct {
	Stops []PlanStop    `json:"route"`
	Stats planner.Stats `json:"globalStats"`
}
