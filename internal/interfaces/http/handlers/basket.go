// internal/interfaces/http/handlers/basket.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/basket"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
)

// BasketHandler handles basket endpoints
type BasketHandler struct {
	basketService *basket.Service
	config        *config.Config
}

// NewBasketHandler creates a new basket handler
func NewBasketHandler(basketService *basket.Service, cfg *config.Config) *BasketHandler {
	return &BasketHandler{
		basketService: basketService,
		config:        cfg,
	}
}

// GetBasket handles GET /basket
func (h *BasketHandler) GetBasket(c *gin.Context) {
	userID := userIDPtr(c)
	sessionID := getOrCreateSessionID(c, h.config)

	response, err := h.basketService.Get(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve basket",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Basket retrieved successfully",
		"data":    response,
	})
}

// AddItem handles POST /basket/items
func (h *BasketHandler) AddItem(c *gin.Context) {
	userID := userIDPtr(c)
	sessionID := getOrCreateSessionID(c, h.config)

	var req basket.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	response, err := h.basketService.AddItem(c.Request.Context(), userID, sessionID, &req)
	if err != nil {
		h.respondBasketError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to basket successfully",
		"data":    response,
	})
}

// UpdateItem handles PUT /basket/items/:id
func (h *BasketHandler) UpdateItem(c *gin.Context) {
	userID := userIDPtr(c)
	sessionID := getOrCreateSessionID(c, h.config)

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID",
		})
		return
	}

	var req basket.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	response, err := h.basketService.SetQuantity(c.Request.Context(), userID, sessionID, uint(itemID), *req.Quantity)
	if err != nil {
		h.respondBasketError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Basket item updated successfully",
		"data":    response,
	})
}

// RemoveItem handles DELETE /basket/items/:id
func (h *BasketHandler) RemoveItem(c *gin.Context) {
	userID := userIDPtr(c)
	sessionID := getOrCreateSessionID(c, h.config)

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID",
		})
		return
	}

	response, err := h.basketService.RemoveItem(c.Request.Context(), userID, sessionID, uint(itemID))
	if err != nil {
		h.respondBasketError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from basket successfully",
		"data":    response,
	})
}

// ClearBasket handles DELETE /basket
func (h *BasketHandler) ClearBasket(c *gin.Context) {
	userID := userIDPtr(c)
	sessionID := getOrCreateSessionID(c, h.config)

	if err := h.basketService.Clear(c.Request.Context(), userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear basket",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Basket cleared successfully",
	})
}

// GetCount handles GET /basket/count
func (h *BasketHandler) GetCount(c *gin.Context) {
	userID := userIDPtr(c)
	sessionID := getOrCreateSessionID(c, h.config)

	count, err := h.basketService.Count(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get basket count",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Basket count retrieved successfully",
		"data": gin.H{
			"count": count,
		},
	})
}

// MergeGuestBasket handles POST /basket/merge, called when a user logs in
func (h *BasketHandler) MergeGuestBasket(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	sessionID := getOrCreateSessionID(c, h.config)

	if err := h.basketService.MergeGuestBasket(c.Request.Context(), userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to merge basket",
		})
		return
	}

	response, err := h.basketService.Get(c.Request.Context(), &userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve merged basket",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Guest basket merged successfully",
		"data":    response,
	})
}

// respondBasketError maps domain errors to HTTP status codes
func (h *BasketHandler) respondBasketError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrItemNotFound), errors.Is(err, basket.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, basket.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, basket.ErrMixedStore):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update basket"})
	}
}

// getOrCreateSessionID gets the session ID from the cookie or creates a new one
func getOrCreateSessionID(c *gin.Context, cfg *config.Config) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()

		maxAge := int(cfg.Checkout.GuestBasketTTL.Seconds())
		c.SetCookie("session_id", sessionID, maxAge, "/", "", false, true)
	}

	return sessionID
}

// userIDPtr returns the authenticated user's ID, or nil for guests
func userIDPtr(c *gin.Context) *uint {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		return nil
	}
	return &userID
}
