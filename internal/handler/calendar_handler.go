package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripstack/internal/service"
)

// CalendarHandler handles calendar sync endpoints.
type CalendarHandler struct {
	calendarService service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// Sync handles POST /api/v1/calendar/sync
func (h *CalendarHandler) Sync(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	var input service.CalendarSyncInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.calendarService.Sync(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
