package booking

type BookingStatus string

const (
	BookingStatusRegistered BookingStatus = "registered"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusMoved      BookingStatus = "moved"
)

// Helper methods for BookingStatus
func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusRegistered, BookingStatusCompleted, BookingStatusCancelled, BookingStatusMoved:
		return true
	default:
		return false
	}
}

// IsActive returns true while the booking is neither cancelled nor completed
func (bs BookingStatus) IsActive() bool {
	return bs != BookingStatusCancelled && bs != BookingStatusCompleted
}

// GetAllBookingStatuses returns all valid booking statuses
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusRegistered,
		BookingStatusCompleted,
		BookingStatusCancelled,
		BookingStatusMoved,
	}
}

// InactiveBookingStatuses are the terminal statuses excluded from active bookings
func InactiveBookingStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusCancelled, BookingStatusCompleted}
}
