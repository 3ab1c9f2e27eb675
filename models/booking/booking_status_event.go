package booking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatusEvent records one status transition of a booking
type BookingStatusEvent struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BookingID uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	Booking   *Booking  `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Status           BookingStatus `gorm:"size:20;not null" json:"status"`
	MovedToBookingID *uuid.UUID    `gorm:"type:uuid" json:"moved_to_booking_id,omitempty"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the BookingStatusEvent model
func (BookingStatusEvent) TableName() string {
	return "booking_status_events"
}

func (e *BookingStatusEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
