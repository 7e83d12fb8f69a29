package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Product represents an item sold in the boutique.
// Products are not bookable; they are only listed on the site.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:120;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;check:product_price_non_negative,price >= 0"`
	Category    string          `gorm:"size:50;not null"`
	ImageURL    string          `gorm:"size:255"`
}

func (p *Product) TableName() string {
	return "product"
}

// Validate checks the invariants the schema also enforces.
func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if p.Price.IsNegative() {
		return errors.New("product price must not be negative")
	}
	if p.Category == "" {
		return errors.New("product category is required")
	}
	return nil
}
