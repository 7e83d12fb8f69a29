package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thesanatorium/website/models"
	"gorm.io/gorm"
)

const placeholderImage = "/static/images/placeholder.jpg"

// SampleServices is the fixed service catalogue loaded by Seed.
func SampleServices() []models.Service {
	return []models.Service{
		{Name: "Event Space - Studio A", Description: "Our 100sqm flagship studio, perfect for large workshops, pop-ups, and events.", BasePrice: decimal.RequireFromString("100.00")},
		{Name: "Event Space - Studio B", Description: "An intimate, 50sqm naturally-lit space for photoshoots or small gatherings.", BasePrice: decimal.RequireFromString("75.00")},
		{Name: "Co-Working Desk", Description: "A dedicated hot-desk in our creative co-working zone. Includes Wi-Fi and coffee.", BasePrice: decimal.RequireFromString("15.00")},
		{Name: "Subletting Shelf", Description: "Display your brand's products in our curated boutique. Price is per-week.", BasePrice: decimal.RequireFromString("50.00")},
	}
}

// SampleProducts is the fixed boutique catalogue loaded by Seed.
func SampleProducts() []models.Product {
	return []models.Product{
		{Name: "Hand-Tied Bouquet", Description: "Fresh, local flowers arranged daily.", Price: decimal.RequireFromString("45.00"), Category: models.CategoryFlowers, ImageURL: placeholderImage},
		{Name: "Linen Tunic", Description: "Locally made 100% linen garment.", Price: decimal.RequireFromString("120.00"), Category: models.CategoryClothes, ImageURL: placeholderImage},
		{Name: "Abstract Canvas", Description: "Original 24x36 art by a Nairobi local.", Price: decimal.RequireFromString("300.00"), Category: models.CategoryArt, ImageURL: placeholderImage},
		{Name: "Beaded Earrings", Description: "Handcrafted Maasai beaded accessories.", Price: decimal.RequireFromString("25.00"), Category: models.CategoryAccessories, ImageURL: placeholderImage},
		{Name: "Ceramic Vase", Description: "Minimalist artisan pottery for your home.", Price: decimal.RequireFromString("60.00"), Category: models.CategoryArt, ImageURL: placeholderImage},
		{Name: "Designer Shirt", Description: "From the latest collection of a local designer.", Price: decimal.RequireFromString("85.00"), Category: models.CategoryClothes, ImageURL: placeholderImage},
		{Name: "Dried Flower Bundle", Description: "A long-lasting dried arrangement.", Price: decimal.RequireFromString("30.00"), Category: models.CategoryFlowers, ImageURL: placeholderImage},
		{Name: "Brass Cuff", Description: "A statement brass accessory, hand-hammered.", Price: decimal.RequireFromString("55.00"), Category: models.CategoryAccessories, ImageURL: placeholderImage},
	}
}

// SeedResult reports what Seed removed and inserted.
type SeedResult struct {
	DeletedBookings int64
	DeletedProducts int64
	DeletedServices int64
	Services        int
	Products        int
}

// Seed wipes bookings, products and services and loads the sample
// catalogue. Everything runs in one transaction, so a failure leaves the
// previous contents in place.
func Seed(ctx context.Context, db *gorm.DB) (SeedResult, error) {
	return seed(ctx, db, SampleServices(), SampleProducts())
}

func seed(ctx context.Context, db *gorm.DB, services []models.Service, products []models.Product) (SeedResult, error) {
	for i := range services {
		if err := services[i].Validate(); err != nil {
			return SeedResult{}, fmt.Errorf("seed service %d: %w", i, err)
		}
	}
	for i := range products {
		if err := products[i].Validate(); err != nil {
			return SeedResult{}, fmt.Errorf("seed product %d: %w", i, err)
		}
	}

	var res SeedResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})

		// bookings reference services, so they go first
		r := all.Delete(&models.Booking{})
		if r.Error != nil {
			return fmt.Errorf("delete bookings: %w", r.Error)
		}
		res.DeletedBookings = r.RowsAffected

		if r = all.Delete(&models.Product{}); r.Error != nil {
			return fmt.Errorf("delete products: %w", r.Error)
		}
		res.DeletedProducts = r.RowsAffected

		if r = all.Delete(&models.Service{}); r.Error != nil {
			return fmt.Errorf("delete services: %w", r.Error)
		}
		res.DeletedServices = r.RowsAffected

		if len(services) > 0 {
			if err := tx.Create(&services).Error; err != nil {
				return fmt.Errorf("insert services: %w", err)
			}
		}
		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return fmt.Errorf("insert products: %w", err)
			}
		}
		res.Services = len(services)
		res.Products = len(products)
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}
