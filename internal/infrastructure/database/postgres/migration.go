// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/your-org/marketplace-backend/internal/domain/basket"
	"github.com/your-org/marketplace-backend/internal/domain/order"
)

// RunAutoMigrations runs gorm auto-migrations for all persisted models
func RunAutoMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	models := []interface{}{
		&basket.BasketItem{},
		&order.Order{},
		&order.OrderItem{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("Database migrations completed")
	return nil
}
