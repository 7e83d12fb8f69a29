package models

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingsRepository struct {
	db *gorm.DB
}

func NewBookingsRepository(db *gorm.DB) *BookingsRepository {
	return &BookingsRepository{db: db}
}

// Create inserts booking in a single transaction. The referenced service
// must exist; otherwise the transaction is rolled back and the error kind
// is KindNotFound. On success booking.ID and booking.CreatedAt are set.
func (r *BookingsRepository) Create(ctx context.Context, booking *Booking) error {
	if booking.Status == "" {
		booking.Status = BookingPending
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Service{}).Where("id = ?", booking.ServiceID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrServiceNotFound
		}
		return tx.Omit(clause.Associations).Create(booking).Error
	})
	return wrapErr("create booking", err)
}

// ListAll returns every booking with its service, oldest first.
func (r *BookingsRepository) ListAll(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Order("created_at, id").
		Find(&bookings).Error; err != nil {
		return nil, wrapErr("list bookings", err)
	}
	return bookings, nil
}
