package database

import (
	"fmt"

	"github.com/thesanatorium/website/models"
	"gorm.io/gorm"
)

// Migrate creates the service, product and booking tables if they are
// missing. Running it against an up-to-date schema is a no-op.
func Migrate(db *gorm.DB) error {
	// service first: booking references it
	if err := db.AutoMigrate(&models.Service{}, &models.Product{}, &models.Booking{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
