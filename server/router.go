package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

type TempleHandler interface {
	ListTemples(w http.ResponseWriter, r *http.Request)
	GetTemplesNearby(w http.ResponseWriter, r *http.Request)
	GetCalendar(w http.ResponseWriter, r *http.Request)
	GetTemple(w http.ResponseWriter, r *http.Request)
	GetForecast(w http.ResponseWriter, r *http.Request)
	GetForecastChart(w http.ResponseWriter, r *http.Request)
}

type PlanHandler interface {
	OptimizePlan(w http.ResponseWriter, r *http.Request)
}

type FestivalHandler interface {
	ListFestivals(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	templeHandler   TempleHandler
	planHandler     PlanHandler
	festivalHandler FestivalHandler
	ping            http.HandlerFunc
	router          *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	templeHandler TempleHandler,
	planHandler PlanHandler,
	festivalHandler FestivalHandler,
	ping http.HandlerFunc,
	router *mux.Router) *Router {
	return &Router{
		templeHandler:   templeHandler,
		planHandler:     planHandler,
		festivalHandler: festivalHandler,
		ping:            ping,
		router:          router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/ping", r.ping).Methods("GET")

	r.router.HandleFunc("/v1/temples", r.templeHandler.ListTemples).Methods("GET")
	// expects ?lat={latitude(float)}&lng={longitude(float)}&radius={km(float), optional}
	r.router.HandleFunc("/v1/temples/nearby", r.templeHandler.GetTemplesNearby).Methods("GET")
	// expects ?templeIds={id,id,...}&startDate={YYYY-MM-DD}&endDate={YYYY-MM-DD}
	// registered before {id} so "calendar" is not taken as a temple id
	r.router.HandleFunc("/v1/temples/calendar", r.templeHandler.GetCalendar).Methods("GET")
	r.router.HandleFunc("/v1/temples/{id}", r.templeHandler.GetTemple).Methods("GET")
	// expects ?date={YYYY-MM-DD, optional}
	r.router.HandleFunc("/v1/temples/{id}/forecast", r.templeHandler.GetForecast).Methods("GET")
	r.router.HandleFunc("/v1/temples/{id}/forecast/chart", r.templeHandler.GetForecastChart).Methods("GET")

	r.router.HandleFunc("/v1/plans/optimize", r.planHandler.OptimizePlan).Methods("POST")

	r.router.HandleFunc("/v1/festivals", r.festivalHandler.ListFestivals).Methods("GET")
}
