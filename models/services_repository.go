package models

import (
	"context"

	"gorm.io/gorm"
)

// ServiceOrder selects the sort column for service listings.
type ServiceOrder int

const (
	ServiceOrderByID ServiceOrder = iota
	ServiceOrderByName
)

func (o ServiceOrder) clause() string {
	if o == ServiceOrderByName {
		// id breaks ties so equal names still list deterministically
		return "name, id"
	}
	return "id"
}

type ServicesRepository struct {
	db *gorm.DB
}

func NewServicesRepository(db *gorm.DB) *ServicesRepository {
	return &ServicesRepository{db: db}
}

func (r *ServicesRepository) List(ctx context.Context, order ServiceOrder) ([]Service, error) {
	var services []Service
	if err := r.db.WithContext(ctx).Order(order.clause()).Find(&services).Error; err != nil {
		return nil, wrapErr("list services", err)
	}
	return services, nil
}

func (r *ServicesRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Service{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrapErr("check service", err)
	}
	return count > 0, nil
}
