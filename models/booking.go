package models

import "time"

// BookingStatus tracks the manual follow-up state of a booking request.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking is a customer's request to reserve a Service on a given date.
// Rows are only ever inserted by the booking form; CreatedAt is write-once.
type Booking struct {
	ID            uint          `gorm:"primaryKey"`
	FullName      string        `gorm:"size:100;not null"`
	Email         string        `gorm:"size:100;not null;index"`
	PhoneNumber   string        `gorm:"size:20;not null"`
	ServiceID     uint          `gorm:"not null"`
	Service       Service       `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	PlanType      string        `gorm:"size:50;not null"`
	RequestedDate time.Time     `gorm:"type:date;not null"`
	Message       string        `gorm:"type:text"`
	Status        BookingStatus `gorm:"size:20;not null;default:pending;check:booking_status_valid,status IN ('pending','confirmed','cancelled')"`
	CreatedAt     time.Time     `gorm:"<-:create;autoCreateTime"`
}

func (b *Booking) TableName() string {
	return "booking"
}
