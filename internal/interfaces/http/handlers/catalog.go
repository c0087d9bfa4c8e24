// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/your-org/marketplace-backend/internal/pkg/currency"
)

// CatalogHandler handles catalog listing endpoints
type CatalogHandler struct {
	fetcher catalog.Fetcher
	config  *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(fetcher catalog.Fetcher, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		fetcher: fetcher,
		config:  cfg,
	}
}

// itemView is an ItemRef with its price formatted for display
type itemView struct {
	catalog.ItemRef
	PriceFormatted string `json:"price_formatted"`
}

// ListItems handles GET /catalog/items
func (h *CatalogHandler) ListItems(c *gin.Context) {
	items, err := h.fetcher.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to fetch catalog",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Catalog retrieved successfully",
		"data":    h.buildViews(c, items),
	})
}

// ListStoreItems handles GET /catalog/stores/:id/items
func (h *CatalogHandler) ListStoreItems(c *gin.Context) {
	storeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	items, err := h.fetcher.ListStoreItems(c.Request.Context(), uint(storeID))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to fetch store catalog",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store catalog retrieved successfully",
		"data":    h.buildViews(c, items),
	})
}

// GetItem handles GET /catalog/items/:id
func (h *CatalogHandler) GetItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID",
		})
		return
	}

	item, err := h.fetcher.GetItem(c.Request.Context(), uint(itemID))
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to fetch item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item retrieved successfully",
		"data": itemView{
			ItemRef:        item,
			PriceFormatted: currency.Format(item.Price, h.displayInfo(c, item.Currency)),
		},
	})
}

func (h *CatalogHandler) buildViews(c *gin.Context, items []catalog.ItemRef) []itemView {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, itemView{
			ItemRef:        item,
			PriceFormatted: currency.Format(item.Price, h.displayInfo(c, item.Currency)),
		})
	}
	return views
}

// displayInfo picks the formatting locale. The caller's region wins when
// its currency matches the item; otherwise the item's own currency drives.
func (h *CatalogHandler) displayInfo(c *gin.Context, code string) currency.Info {
	region := middleware.GetRegionFromContext(c)
	info := currency.Resolve(region)
	if info.Code != code {
		info = currency.ResolveCode(code)
	}
	return info
}
