package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripstack/internal/domain"
	"tripstack/internal/service"
)

// FlightHandler handles flight-status endpoints.
type FlightHandler struct {
	flightService service.FlightService
}

// NewFlightHandler creates a new FlightHandler.
func NewFlightHandler(flightService service.FlightService) *FlightHandler {
	return &FlightHandler{flightService: flightService}
}

// flightStatusInput is the request body for flight-status lookups.
type flightStatusInput struct {
	FlightNumber string `json:"flightNumber" binding:"required"`
	FlightDate   string `json:"flightDate"`
}

// Status handles POST /api/v1/flights/status. An unknown flight is not an
// HTTP error: it returns 200 with an error payload so clients can show a
// friendly message.
func (h *FlightHandler) Status(c *gin.Context) {
	var input flightStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	status, err := h.flightService.Status(c.Request.Context(), input.FlightNumber, input.FlightDate)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"error":   "not_found",
				"message": "no status found for that flight and date",
			})
			return
		}
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
