package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripstack/internal/service"
)

// BillingHandler handles subscription billing endpoints.
type BillingHandler struct {
	billingService service.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(billingService service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// SubscriptionStatus handles POST /api/v1/billing/subscription
func (h *BillingHandler) SubscriptionStatus(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	status, err := h.billingService.SubscriptionStatus(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// CreateCheckout handles POST /api/v1/billing/checkout
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	var input service.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	url, err := h.billingService.CreateCheckout(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}
