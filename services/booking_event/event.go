package booking_event

import (
	"fmt"

	bookingModel "github.com/balojey/abdullateef-api/models/booking"

	"gorm.io/gorm"
)

// RecordStatus appends the booking's current status and successor to its history.
// Call it inside the transaction that changed the booking.
func RecordStatus(tx *gorm.DB, b *bookingModel.Booking) error {
	ev := bookingModel.BookingStatusEvent{
		BookingID:        b.ID,
		Status:           b.Status,
		MovedToBookingID: b.MovedToBookingID,
	}
	if err := tx.Create(&ev).Error; err != nil {
		return fmt.Errorf("failed to record booking status: %w", err)
	}
	return nil
}

// History returns a booking's status changes, oldest first
func History(tx *gorm.DB, bookingID interface{}) ([]bookingModel.BookingStatusEvent, error) {
	events := []bookingModel.BookingStatusEvent{}
	err := tx.Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
