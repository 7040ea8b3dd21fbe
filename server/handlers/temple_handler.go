package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"tp-server/config"
	"tp-server/crowd"
	"tp-server/models"
	"tp-server/util"
)

const (
	LAT_QUERY_ARG        = "lat"
	LNG_QUERY_ARG        = "lng"
	RADIUS_QUERY_ARG     = "radius"
	DATE_QUERY_ARG       = "date"
	TEMPLE_IDS_QUERY_ARG = "templeIds"
	START_DATE_QUERY_ARG = "startDate"
	END_DATE_QUERY_ARG   = "endDate"
	TEMPLE_ID_PATH_VAR   = "id"
)

// TempleService is what the temple endpoints need from the service layer.
type TempleService interface {
	ListTemples(ctx context.Context, at time.Time) ([]models.TempleWithCrowd, error)
	GetTemple(ctx context.Context, id string, now time.Time) (*models.TempleDetail, error)
	Forecast(ctx context.Context, id string, date, now time.Time) (*models.TempleForecast, error)
	CalendarForecast(ctx context.Context, ids []string, start, end, now time.Time) (*crowd.CalendarForecast, error)
	NearbyTemples(ctx context.Context, lat, lng, radiusKm float64, at time.Time) ([]models.TempleWithCrowd, error)
}

type TempleHandler struct {
	templeService TempleService
	now           Clock
}

func NewTempleHandler(templeService TempleService, now Clock) *TempleHandler {
	return &TempleHandler{templeService: templeService, now: now}
}

// ListTemples handles GET /v1/temples
func (h *TempleHandler) ListTemples(w http.ResponseWriter, r *http.Request) {
	temples, err := h.templeService.ListTemples(r.Context(), h.now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, temples)
}

// GetTemplesNearby handles GET /v1/temples/nearby?lat=&lng=&radius=
// radius is in km and defaults to DEFAULT_NEARBY_RADIUS_KM.
func (h *TempleHandler) GetTemplesNearby(w http.ResponseWriter, r *http.Request) {
	lat, err := parseFloatArg(r, LAT_QUERY_ARG)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument "+LAT_QUERY_ARG)
		return
	}
	lng, err := parseFloatArg(r, LNG_QUERY_ARG)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument "+LNG_QUERY_ARG)
		return
	}
	radius := config.DEFAULT_NEARBY_RADIUS_KM
	if r.URL.Query().Get(RADIUS_QUERY_ARG) != "" {
		if radius, err = parseFloatArg(r, RADIUS_QUERY_ARG); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid argument "+RADIUS_QUERY_ARG)
			return
		}
	}

	temples, err := h.templeService.NearbyTemples(r.Context(), lat, lng, radius, h.now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, temples)
}

// GetCalendar handles GET /v1/temples/calendar?templeIds=a,b&startDate=&endDate=
func (h *TempleHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids := splitIDs(q.Get(TEMPLE_IDS_QUERY_ARG))
	if len(ids) == 0 || q.Get(START_DATE_QUERY_ARG) == "" || q.Get(END_DATE_QUERY_ARG) == "" {
		writeError(w, http.StatusBadRequest, "Missing required parameters: templeIds, startDate, endDate")
		return
	}

	now := h.now()
	start, err := parseDateArg(r, START_DATE_QUERY_ARG, now.Location(), now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}
	end, err := parseDateArg(r, END_DATE_QUERY_ARG, now.Location(), now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	result, err := h.templeService.CalendarForecast(r.Context(), ids, start, end, now)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetTemple handles GET /v1/temples/{id}
func (h *TempleHandler) GetTemple(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)[TEMPLE_ID_PATH_VAR]
	detail, err := h.templeService.GetTemple(r.Context(), id, h.now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// GetForecast handles GET /v1/temples/{id}/forecast?date=YYYY-MM-DD
func (h *TempleHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	forecast, ok := h.loadForecast(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

// GetForecastChart handles GET /v1/temples/{id}/forecast/chart?date=YYYY-MM-DD
func (h *TempleHandler) GetForecastChart(w http.ResponseWriter, r *http.Request) {
	forecast, ok := h.loadForecast(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	title := fmt.Sprintf("%s - %s", forecast.TempleName, forecast.Date)
	if err := util.RenderForecastChart(w, title, forecast.Forecast); err != nil {
		writeServiceError(w, r, err)
	}
}

func (h *TempleHandler) loadForecast(w http.ResponseWriter, r *http.Request) (*models.TempleForecast, bool) {
	now := h.now()
	date, err := parseDateArg(r, DATE_QUERY_ARG, now.Location(), now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return nil, false
	}

	id := mux.Vars(r)[TEMPLE_ID_PATH_VAR]
	forecast, err := h.templeService.Forecast(r.Context(), id, date, now)
	if err != nil {
		writeServiceError(w, r, err)
		return nil, false
	}
	return forecast, true
}
