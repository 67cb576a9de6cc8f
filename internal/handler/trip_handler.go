package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripstack/internal/service"
)

// TripHandler handles trip CRUD endpoints.
type TripHandler struct {
	tripService service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// Create handles POST /api/v1/trips
func (h *TripHandler) Create(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	var input service.TripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, trip)
}

// List handles GET /api/v1/trips
func (h *TripHandler) List(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	offset, limit := paginationParams(c)
	trips, total, err := h.tripService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, trips, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	trip, err := h.tripService.GetByID(c.Request.Context(), userID, tripID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, trip)
}

// Update handles PUT /api/v1/trips/:id
func (h *TripHandler) Update(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input service.TripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	trip, err := h.tripService.Update(c.Request.Context(), userID, tripID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, trip)
}

// Delete handles DELETE /api/v1/trips/:id
func (h *TripHandler) Delete(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.tripService.Delete(c.Request.Context(), userID, tripID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": tripID})
}

// paginationParams reads offset/limit query params with sane bounds.
func paginationParams(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return offset, limit
}
