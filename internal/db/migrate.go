package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
)

// Migrate runs schema auto-migration for the storefront tables.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&model.CartRecord{},
		&model.OrderSubmission{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
