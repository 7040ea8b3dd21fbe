package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-server/calendar"
	"tp-server/crowd"
	"tp-server/dao/redis"
	"tp-server/db"
	"tp-server/models"
	"tp-server/planner"
	services "tp-server/service"
)

var (
	ist       = time.FixedZone("IST", 5*3600+1800)
	wednesday = time.Date(2026, 10, 21, 13, 0, 0, 0, ist)
)

func ptr[T any](v T) *T { return &v }

func clock() time.Time { return wednesday }

// newTestRouter wires the real services over the in-memory Redis client.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	dao := redis.NewRedisTempleDAO(db.NewMockRedisClient(context.Background()))
	for _, temple := range []models.Temple{
		{ID: "kashi", Name: "Kashi Vishwanath", Location: "Varanasi", State: "Uttar Pradesh", Deity: "Lord Shiva", Lat: ptr(25.3109), Lng: ptr(83.0107), CrowdPattern: models.CrowdPattern{Type: "pilgrimage"}},
		{ID: "sankat-mochan", Name: "Sankat Mochan", Lat: ptr(25.2820), Lng: ptr(82.9994)},
		{ID: "akshardham", Name: "Akshardham", Lat: ptr(28.6127), Lng: ptr(77.2773), CrowdPattern: models.CrowdPattern{Type: "tourist"}},
	} {
		require.NoError(t, dao.UpsertTemple(temple))
	}

	empty, err := calendar.New(nil)
	require.NoError(t, err)
	predictor := crowd.NewPredictor(
		crowd.WithJitter(crowd.NoJitter),
		crowd.WithCalendar(empty),
		crowd.WithClock(clock),
	)
	templeService := services.NewTempleService(dao, nil, predictor, calendar.Default())
	planService := services.NewPlanService(dao, templeService)

	th := NewTempleHandler(templeService, clock)
	ph := NewPlanHandler(planService, clock)
	fh := NewFestivalHandler(templeService, clock)

	r := mux.NewRouter()
	r.HandleFunc("/ping", Ping).Methods("GET")
	r.HandleFunc("/v1/temples", th.ListTemples).Methods("GET")
	r.HandleFunc("/v1/temples/nearby", th.GetTemplesNearby).Methods("GET")
	r.HandleFunc("/v1/temples/calendar", th.GetCalendar).Methods("GET")
	r.HandleFunc("/v1/temples/{id}", th.GetTemple).Methods("GET")
	r.HandleFunc("/v1/temples/{id}/forecast", th.GetForecast).Methods("GET")
	r.HandleFunc("/v1/temples/{id}/forecast/chart", th.GetForecastChart).Methods("GET")
	r.HandleFunc("/v1/plans/optimize", ph.OptimizePlan).Methods("POST")
	r.HandleFunc("/v1/festivals", fh.ListFestivals).Methods("GET")
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

func TestPing(t *testing.T) {
	rr := do(newTestRouter(t), "GET", "/ping", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"pong"}`, rr.Body.String())
}

func TestListTemples(t *testing.T) {
	rr := do(newTestRouter(t), "GET", "/v1/temples", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var temples []models.TempleWithCrowd
	decode(t, rr, &temples)
	require.Len(t, temples, 3)
	assert.Equal(t, "Akshardham", temples[0].Name)
}

func TestGetTemple(t *testing.T) {
	r := newTestRouter(t)

	rr := do(r, "GET", "/v1/temples/sankat-mochan", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var detail models.TempleDetail
	decode(t, rr, &detail)
	assert.Equal(t, "sankat-mochan", detail.ID)
	assert.Equal(t, 36, detail.Crowd.Percentage)
	assert.Len(t, detail.HourlyForecast, 24)

	rr = do(r, "GET", "/v1/temples/atlantis", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	var errResp ErrorResponse
	decode(t, rr, &errResp)
	assert.Contains(t, errResp.Error, "temple not found")
}

func TestGetForecast(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name     string
		path     string
		status   int
		wantDate string
	}{
		{"explicit date", "/v1/temples/sankat-mochan/forecast?date=2026-10-24", http.StatusOK, "2026-10-24"},
		{"defaults to today", "/v1/temples/sankat-mochan/forecast", http.StatusOK, "2026-10-21"},
		{"bad date", "/v1/temples/sankat-mochan/forecast?date=24-10-2026", http.StatusBadRequest, ""},
		{"unknown temple", "/v1/temples/atlantis/forecast", http.StatusNotFound, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(r, "GET", tc.path, "")
			require.Equal(t, tc.status, rr.Code, rr.Body.String())
			if tc.status != http.StatusOK {
				return
			}
			var forecast models.TempleForecast
			decode(t, rr, &forecast)
			assert.Equal(t, tc.wantDate, forecast.Date)
			assert.Len(t, forecast.Forecast, 24)
		})
	}
}

func TestGetForecastChart(t *testing.T) {
	rr := do(newTestRouter(t), "GET", "/v1/temples/kashi/forecast/chart?date=2026-10-21", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "Kashi Vishwanath")
}

func TestGetTemplesNearby(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		query  string
		status int
		count  int
	}{
		{"varanasi within 10km", "lat=25.31&lng=83.01&radius=10", http.StatusOK, 2},
		{"default radius", "lat=28.61&lng=77.27", http.StatusOK, 1},
		{"nothing nearby", "lat=10&lng=70", http.StatusOK, 0},
		{"missing lat", "lng=83.01", http.StatusBadRequest, 0},
		{"bad radius", "lat=25.31&lng=83.01&radius=far", http.StatusBadRequest, 0},
		{"latitude out of range", "lat=95&lng=83.01", http.StatusBadRequest, 0},
		{"negative radius", "lat=25.31&lng=83.01&radius=-1", http.StatusBadRequest, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(r, "GET", "/v1/temples/nearby?"+tc.query, "")
			require.Equal(t, tc.status, rr.Code, rr.Body.String())
			if tc.status != http.StatusOK {
				return
			}
			var temples []models.TempleWithCrowd
			decode(t, rr, &temples)
			assert.Len(t, temples, tc.count)
		})
	}
}

func TestGetCalendar(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name    string
		query   string
		status  int
		temples int
	}{
		{"two temples", "templeIds=kashi,akshardham&startDate=2026-10-21&endDate=2026-10-23", http.StatusOK, 2},
		{"unknown ids skipped", "templeIds=kashi,atlantis&startDate=2026-10-21&endDate=2026-10-21", http.StatusOK, 1},
		{"all unknown", "templeIds=atlantis&startDate=2026-10-21&endDate=2026-10-21", http.StatusNotFound, 0},
		{"missing ids", "startDate=2026-10-21&endDate=2026-10-23", http.StatusBadRequest, 0},
		{"bad date", "templeIds=kashi&startDate=21/10/2026&endDate=2026-10-23", http.StatusBadRequest, 0},
		{"end before start", "templeIds=kashi&startDate=2026-10-23&endDate=2026-10-21", http.StatusBadRequest, 0},
		{"range too long", "templeIds=kashi&startDate=2026-01-01&endDate=2026-12-31", http.StatusBadRequest, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(r, "GET", "/v1/temples/calendar?"+tc.query, "")
			require.Equal(t, tc.status, rr.Code, rr.Body.String())
			if tc.status != http.StatusOK {
				return
			}
			var result crowd.CalendarForecast
			decode(t, rr, &result)
			assert.Len(t, result.Temples, tc.temples)
			assert.Contains(t, result.Comparison, "2026-10-21")
		})
	}
}

func TestOptimizePlan(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name    string
		body    string
		status  int
		wantErr string
	}{
		{"cheapest from delhi", `{"source":"Delhi","templeIds":["kashi","akshardham"],"preference":"cheapest"}`, http.StatusOK, ""},
		{"default preference", `{"source":"Mumbai","templeIds":["kashi","sankat-mochan"]}`, http.StatusOK, ""},
		{"unknown source", `{"source":"Atlantis","templeIds":["kashi"]}`, http.StatusBadRequest, "major Indian city"},
		{"unknown preference", `{"source":"Delhi","templeIds":["kashi"],"preference":"scenic"}`, http.StatusBadRequest, ""},
		{"unknown temple", `{"source":"Delhi","templeIds":["atlantis"]}`, http.StatusNotFound, ""},
		{"missing temples", `{"source":"Delhi"}`, http.StatusBadRequest, "templeIds"},
		{"not json", `{source}`, http.StatusBadRequest, "Invalid request body"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(r, "POST", "/v1/plans/optimize", tc.body)
			require.Equal(t, tc.status, rr.Code, rr.Body.String())
			if tc.status != http.StatusOK {
				var errResp ErrorResponse
				decode(t, rr, &errResp)
				assert.Contains(t, errResp.Error, tc.wantErr)
				return
			}
			var itinerary models.TripPlan
			decode(t, rr, &itinerary)
			assert.Len(t, itinerary.Stops, 2)
		})
	}
}

func TestOptimizePlan_CheapestVisitsNearestFirst(t *testing.T) {
	rr := do(newTestRouter(t), "POST", "/v1/plans/optimize",
		`{"source":"Delhi","templeIds":["kashi","akshardham"],"preference":"cheapest"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var itinerary models.TripPlan
	decode(t, rr, &itinerary)
	require.Len(t, itinerary.Stops, 2)
	assert.Equal(t, "akshardham", itinerary.Stops[0].Temple.ID)
	require.NotNil(t, itinerary.Stops[0].TransportTo)
	assert.Equal(t, "Delhi", itinerary.Stops[0].TransportTo.From)
	require.NotNil(t, itinerary.Stops[1].TransportTo)
	assert.Equal(t, "Akshardham", itinerary.Stops[1].TransportTo.From)
	assert.Equal(t, "Delhi", itinerary.Stats.Source)
	assert.Positive(t, itinerary.Stats.TotalCostEstimate)
}

func TestOptimizePlan_StopsCarryTempleRecord(t *testing.T) {
	rr := do(newTestRouter(t), "POST", "/v1/plans/optimize",
		`{"source":"Delhi","templeIds":["kashi"],"preference":"fastest"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var raw struct {
		Route []struct {
			Temple map[string]interface{} `json:"temple"`
		} `json:"route"`
	}
	decode(t, rr, &raw)
	require.Len(t, raw.Route, 1)
	temple := raw.Route[0].Temple
	assert.Equal(t, "kashi", temple["id"])
	assert.Equal(t, "Varanasi", temple["location"])
	assert.Equal(t, "Uttar Pradesh", temple["state"])
	assert.Equal(t, "Lord Shiva", temple["deity"])
	assert.Equal(t, map[string]interface{}{"type": "pilgrimage"}, temple["crowdPattern"],
		"crowdPattern has the same shape as on /v1/temples")
}

func TestOptimizePlan_CrowdOrdersQuietestFirst(t *testing.T) {
	rr := do(newTestRouter(t), "POST", "/v1/plans/optimize",
		`{"source":"Lucknow","templeIds":["kashi","sankat-mochan"],"preference":"crowd"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var itinerary models.TripPlan
	decode(t, rr, &itinerary)
	require.Len(t, itinerary.Stops, 2)
	for _, stop := range itinerary.Stops {
		assert.Nil(t, stop.TransportTo)
	}
	require.NotNil(t, itinerary.Stops[0].CrowdPercentage)
	require.NotNil(t, itinerary.Stops[1].CrowdPercentage)
	assert.LessOrEqual(t, *itinerary.Stops[0].CrowdPercentage, *itinerary.Stops[1].CrowdPercentage)
}

func TestListFestivals(t *testing.T) {
	rr := do(newTestRouter(t), "GET", "/v1/festivals", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var festivals []calendar.Festival
	decode(t, rr, &festivals)
	require.NotEmpty(t, festivals)
	assert.Equal(t, "Diwali", festivals[0].Name)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(rr.Body.String()), "["), "festivals are a bare array")
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", crowd.InvalidInputf("bad"), http.StatusBadRequest},
		{"unknown source", &planner.UnknownSourceError{Source: "x"}, http.StatusBadRequest},
		{"not found", redis.ErrTempleNotFound, http.StatusNotFound},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeServiceError(rr, httptest.NewRequest("GET", "/", nil), tc.err)
			assert.Equal(t, tc.status, rr.Code)
			if tc.status == http.StatusInternalServerError {
				assert.NotContains(t, rr.Body.String(), "boom")
			}
		})
	}
}
