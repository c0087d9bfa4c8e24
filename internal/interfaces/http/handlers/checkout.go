// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/basket"
	"github.com/your-org/marketplace-backend/internal/domain/checkout"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		config:          cfg,
	}
}

// GetPaymentMethods handles GET /checkout/payment-methods
func (h *CheckoutHandler) GetPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment methods retrieved successfully",
		"data":    h.checkoutService.PaymentOptions(),
	})
}

// Submit handles POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	userID := userIDPtr(c)
	sessionID := getOrCreateSessionID(c, h.config)

	var req checkout.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.checkoutService.Submit(c.Request.Context(), userID, sessionID, &req)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order submitted successfully",
		"data":    result,
	})
}

// respondCheckoutError maps checkout errors to HTTP status codes
func (h *CheckoutHandler) respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyBasket),
		errors.Is(err, checkout.ErrIncompleteDelivery),
		errors.Is(err, checkout.ErrMissingPayment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, basket.ErrMixedCurrency):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrSubmissionFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Order submission failed, basket left intact"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
	}
}
