package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripstack/internal/service"
)

// ExpenseHandler handles expense CRUD endpoints.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create handles POST /api/v1/expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	var input service.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, expense)
}

// List handles GET /api/v1/expenses?trip_id=&offset=&limit=
func (h *ExpenseHandler) List(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	var tripID *uuid.UUID
	if raw := c.Query("trip_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid trip_id")
			return
		}
		tripID = &id
	}

	offset, limit := paginationParams(c)
	expenses, total, err := h.expenseService.List(c.Request.Context(), userID, tripID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, expenses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/expenses/:id
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	expense, err := h.expenseService.GetByID(c.Request.Context(), userID, expenseID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, expense)
}

// Update handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input service.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), userID, expenseID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, expense)
}

// Delete handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), userID, expenseID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": expenseID})
}
