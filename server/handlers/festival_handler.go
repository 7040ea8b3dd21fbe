package handlers

import (
	"net/http"
	"time"

	"tp-server/calendar"
)

// FestivalService lists upcoming festivals.
type FestivalService interface {
	UpcomingFestivals(today time.Time) []calendar.Festival
}

type FestivalHandler struct {
	festivalService FestivalService
	now             Clock
}

func NewFestivalHandler(festivalService FestivalService, now Clock) *FestivalHandler {
	return &FestivalHandler{festivalService: festivalService, now: now}
}

// ListFestivals handles GET /v1/festivals
func (h *FestivalHandler) ListFestivals(w http.ResponseWriter, r *http.Request) {
	festivals := h.festivalService.UpcomingFestivals(h.now())
	if festivals == nil {
		festivals = []calendar.Festival{}
	}
	writeJSON(w, http.StatusOK, festivals)
}
