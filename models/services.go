package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Service represents a bookable offering such as a studio or a desk.
type Service struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:120;not null"`
	Description string          `gorm:"type:text"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null;check:service_base_price_non_negative,base_price >= 0"`
}

func (s *Service) TableName() string {
	return "service"
}

func (s *Service) Validate() error {
	if s.Name == "" {
		return errors.New("service name is required")
	}
	if s.BasePrice.IsNegative() {
		return errors.New("service base price must not be negative")
	}
	return nil
}
