// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/basket"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/domain/checkout"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/handlers"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/your-org/marketplace-backend/internal/pkg/receipt"
	"gorm.io/gorm"
)

// SetupRoutes wires all API v1 routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	catalogClient := catalog.NewClient(cfg, logger)
	basketService := basket.NewService(db, redisClient, cfg, catalogClient, logger)
	orderService := order.NewService(db, logger)
	checkoutService := checkout.NewService(basketService, cfg, orderService, logger)
	receiptService := receipt.NewService(cfg)

	catalogHandler := handlers.NewCatalogHandler(catalogClient, cfg)
	basketHandler := handlers.NewBasketHandler(basketService, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cfg)
	orderHandler := handlers.NewOrderHandler(orderService, receiptService, cfg)

	setupCatalogRoutes(rg, catalogHandler, cfg)
	setupBasketRoutes(rg, basketHandler, cfg)
	setupCheckoutRoutes(rg, checkoutHandler, cfg)
	setupStoreRoutes(rg, orderHandler, cfg)
}

// setupCatalogRoutes sets up catalog listing routes
func setupCatalogRoutes(rg *gin.RouterGroup, h *handlers.CatalogHandler, cfg *config.Config) {
	items := rg.Group("/catalog")
	{
		items.GET("/items", h.ListItems)
		items.GET("/items/:id", h.GetItem)
		items.GET("/stores/:id/items", h.ListStoreItems)
	}
}

// setupBasketRoutes sets up basket routes. Baskets work for guest
// sessions and authenticated customers alike.
func setupBasketRoutes(rg *gin.RouterGroup, h *handlers.BasketHandler, cfg *config.Config) {
	b := rg.Group("/basket")
	b.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		b.GET("", h.GetBasket)
		b.DELETE("", h.ClearBasket)
		b.GET("/count", h.GetCount)
		b.POST("/items", h.AddItem)
		b.PUT("/items/:id", h.UpdateItem)
		b.DELETE("/items/:id", h.RemoveItem)
	}

	// Merging requires a logged-in customer
	merge := rg.Group("/basket")
	merge.Use(middleware.AuthMiddleware(cfg))
	{
		merge.POST("/merge", h.MergeGuestBasket)
	}
}

// setupCheckoutRoutes sets up checkout routes
func setupCheckoutRoutes(rg *gin.RouterGroup, h *handlers.CheckoutHandler, cfg *config.Config) {
	co := rg.Group("/checkout")
	co.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		co.GET("/payment-methods", h.GetPaymentMethods)
		co.POST("", h.Submit)
	}
}

// setupStoreRoutes sets up store reporting and receipt routes
func setupStoreRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler, cfg *config.Config) {
	stores := rg.Group("/stores")
	stores.Use(middleware.AuthMiddleware(cfg))
	stores.Use(middleware.StoreMiddleware())
	{
		stores.GET("/:id/orders", h.ListStoreOrders)
		stores.GET("/:id/orders/summary", h.StoreSummary)
	}

	orders := rg.Group("/orders")
	orders.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		orders.GET("/:number/receipt", h.DownloadReceipt)
	}
}
