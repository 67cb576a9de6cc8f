package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripstack/internal/service"
)

// AssistantHandler handles extraction-merge assistant endpoints.
type AssistantHandler struct {
	assistantService service.AssistantService
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistantService service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// AssistTrip handles POST /api/v1/assistant/trip
func (h *AssistantHandler) AssistTrip(c *gin.Context) {
	var input service.TripAssistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.assistantService.AssistTrip(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AssistExpense handles POST /api/v1/assistant/expense
func (h *AssistantHandler) AssistExpense(c *gin.Context) {
	var input service.ExpenseAssistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.assistantService.AssistExpense(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
