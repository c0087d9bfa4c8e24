// internal/interfaces/http/handlers/orders.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/pkg/receipt"
)

// OrderHandler handles store reporting and receipt endpoints
type OrderHandler struct {
	orderService   *order.Service
	receiptService *receipt.Service
	config         *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, receiptService *receipt.Service, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		receiptService: receiptService,
		config:         cfg,
	}
}

// ListStoreOrders handles GET /stores/:id/orders
func (h *OrderHandler) ListStoreOrders(c *gin.Context) {
	storeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	orders, err := h.orderService.ListStoreOrders(c.Request.Context(), uint(storeID), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// StoreSummary handles GET /stores/:id/orders/summary
func (h *OrderHandler) StoreSummary(c *gin.Context) {
	storeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	summary, err := h.orderService.StoreSummary(c.Request.Context(), uint(storeID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build summary",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Summary retrieved successfully",
		"data":    summary,
	})
}

// DownloadReceipt handles GET /orders/:number/receipt
func (h *OrderHandler) DownloadReceipt(c *gin.Context) {
	orderNumber := c.Param("number")

	record, err := h.orderService.GetByNumber(c.Request.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load order",
		})
		return
	}

	pdf, err := h.receiptService.Generate(record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", record.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}
