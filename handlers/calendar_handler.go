package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	caltypes "trendmindAPI/internal/types/calendar"
	"trendmindAPI/services"
)

type CalendarHandler struct {
	calendarService *services.CalendarService
	logger          *zap.Logger
}

func NewCalendarHandler(calendarService *services.CalendarService, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          logger.Named("calendar_handler"),
	}
}

// GetCalendar serves GET /calendar?view=month|week&date=YYYY-MM-DD&nav=next|prev|today.
func (h *CalendarHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	resp, err := h.calendarService.GetCalendar(ctx, userID, services.CalendarQuery{
		View: caltypes.ViewMode(q.Get("view")),
		Date: q.Get("date"),
		Nav:  caltypes.Navigation(q.Get("nav")),
	})
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
