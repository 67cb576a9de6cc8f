package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripstack/internal/service"
)

// ItineraryHandler handles itinerary item endpoints nested under trips.
type ItineraryHandler struct {
	itineraryService service.ItineraryService
}

// NewItineraryHandler creates a new ItineraryHandler.
func NewItineraryHandler(itineraryService service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraryService: itineraryService}
}

// Create handles POST /api/v1/trips/:id/itinerary
func (h *ItineraryHandler) Create(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input service.ItineraryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.itineraryService.Create(c.Request.Context(), userID, tripID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, item)
}

// ListByTrip handles GET /api/v1/trips/:id/itinerary
func (h *ItineraryHandler) ListByTrip(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	items, err := h.itineraryService.ListByTrip(c.Request.Context(), userID, tripID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, items)
}

// Update handles PUT /api/v1/itinerary/:id
func (h *ItineraryHandler) Update(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input service.ItineraryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.itineraryService.Update(c.Request.Context(), userID, itemID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Delete handles DELETE /api/v1/itinerary/:id
func (h *ItineraryHandler) Delete(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.itineraryService.Delete(c.Request.Context(), userID, itemID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": itemID})
}
