package dao

import (
	"context"
	"fmt"

	"github.com/balojey/abdullateef-api/models/agent"
	"github.com/balojey/abdullateef-api/models/booking"
	"github.com/balojey/abdullateef-api/models/client"
	"github.com/balojey/abdullateef-api/models/commission"
	"github.com/balojey/abdullateef-api/models/enums"
	"github.com/balojey/abdullateef-api/models/hajj_package"
	"github.com/balojey/abdullateef-api/models/payment_transaction"
	"github.com/balojey/abdullateef-api/services/booking_event"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingInput holds the fields for a new booking. Status defaults to registered.
type BookingInput struct {
	ClientID         uuid.UUID             `validate:"required"`
	PackageID        uuid.UUID             `validate:"required"`
	AgentID          *uuid.UUID            `validate:"-"`
	TravellingFrom   *enums.Country        `validate:"omitnil,oneof=NG UK US CA"`
	Status           booking.BookingStatus `validate:"omitempty,oneof=registered completed cancelled moved"`
	MovedToBookingID *uuid.UUID            `validate:"-"`
}

// BookingDAO handles bookings and their status history
type BookingDAO struct {
	DB *gorm.DB
}

func NewBookingDAO(db *gorm.DB) *BookingDAO {
	return &BookingDAO{DB: db}
}

func requireRow(ctx context.Context, tx *gorm.DB, model interface{}, id uuid.UUID, name string) error {
	found, err := exists(ctx, tx, model, id)
	if err != nil {
		return err
	}
	if !found {
		return invalidf("%s %s does not exist", name, id)
	}
	return nil
}

// Create inserts a booking after checking that every referenced row exists
func (d *BookingDAO) Create(ctx context.Context, input BookingInput) (*booking.Booking, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	newBooking := &booking.Booking{
		ClientID:         input.ClientID,
		PackageID:        input.PackageID,
		AgentID:          input.AgentID,
		TravellingFrom:   input.TravellingFrom,
		Status:           input.Status,
		MovedToBookingID: input.MovedToBookingID,
	}

	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRow(ctx, tx, &client.Client{}, input.ClientID, "client"); err != nil {
			return err
		}
		if err := requireRow(ctx, tx, &hajj_package.HajjPackage{}, input.PackageID, "hajj package"); err != nil {
			return err
		}
		if input.AgentID != nil {
			if err := requireRow(ctx, tx, &agent.Agent{}, *input.AgentID, "agent"); err != nil {
				return err
			}
		}
		if input.MovedToBookingID != nil {
			if err := requireRow(ctx, tx, &booking.Booking{}, *input.MovedToBookingID, "booking"); err != nil {
				return err
			}
		}

		if err := tx.Create(newBooking).Error; err != nil {
			return translateError(err)
		}
		return booking_event.RecordStatus(tx, newBooking)
	})
	if err != nil {
		return nil, err
	}
	return newBooking, nil
}

func (d *BookingDAO) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return first[booking.Booking](ctx, d.DB, "id = ?", id)
}

// List returns every booking, newest first
func (d *BookingDAO) List(ctx context.Context) ([]booking.Booking, error) {
	bookings := []booking.Booking{}
	if err := d.DB.WithContext(ctx).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// deleteBookings removes the bookings with the given ids along with their payments,
// commissions and status history, and clears moved-to links pointing at them.
// It must run inside a transaction.
func deleteBookings(tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	if err := tx.Model(&booking.Booking{}).Where("moved_to_booking_id IN ?", ids).Update("moved_to_booking_id", nil).Error; err != nil {
		return fmt.Errorf("failed to clear moved-to links: %w", err)
	}
	if err := tx.Where("booking_id IN ?", ids).Delete(&payment_transaction.PaymentTransaction{}).Error; err != nil {
		return fmt.Errorf("failed to delete booking payments: %w", err)
	}
	if err := tx.Where("booking_id IN ?", ids).Delete(&commission.Commission{}).Error; err != nil {
		return fmt.Errorf("failed to delete booking commissions: %w", err)
	}
	if err := tx.Where("booking_id IN ?", ids).Delete(&booking.BookingStatusEvent{}).Error; err != nil {
		return fmt.Errorf("failed to delete booking history: %w", err)
	}
	if err := tx.Where("id IN ?", ids).Delete(&booking.Booking{}).Error; err != nil {
		return fmt.Errorf("failed to delete bookings: %w", err)
	}
	return nil
}

// Delete removes a booking with its payments and commissions
func (d *BookingDAO) Delete(ctx context.Context, id uuid.UUID) error {
	return d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := exists(ctx, tx, &booking.Booking{}, id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		return deleteBookings(tx, []uuid.UUID{id})
	})
}

func (d *BookingDAO) GetByClient(ctx context.Context, clientID uuid.UUID) ([]booking.Booking, error) {
	return find[booking.Booking](ctx, d.DB, "client_id = ?", clientID)
}

func (d *BookingDAO) GetByAgent(ctx context.Context, agentID uuid.UUID) ([]booking.Booking, error) {
	return find[booking.Booking](ctx, d.DB, "agent_id = ?", agentID)
}

func (d *BookingDAO) GetByPackage(ctx context.Context, packageID uuid.UUID) ([]booking.Booking, error) {
	return find[booking.Booking](ctx, d.DB, "package_id = ?", packageID)
}

func (d *BookingDAO) GetByStatus(ctx context.Context, status booking.BookingStatus) ([]booking.Booking, error) {
	if !status.IsValid() {
		return nil, invalidf("unknown booking status %q", status)
	}
	return find[booking.Booking](ctx, d.DB, "status = ?", status)
}

// GetByCountry returns bookings travelling from country
func (d *BookingDAO) GetByCountry(ctx context.Context, country enums.Country) ([]booking.Booking, error) {
	if !country.IsValid() {
		return nil, invalidf("unknown country %q", country)
	}
	return find[booking.Booking](ctx, d.DB, "travelling_from = ?", country)
}

// transition applies columns to a booking and records the resulting status
func (d *BookingDAO) transition(ctx context.Context, id uuid.UUID, columns map[string]interface{}) (*booking.Booking, error) {
	var updated *booking.Booking
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateColumns(ctx, tx, &booking.Booking{}, id, columns); err != nil {
			return err
		}
		b, err := first[booking.Booking](ctx, tx, "id = ?", id)
		if err != nil {
			return err
		}
		updated = b
		return booking_event.RecordStatus(tx, b)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateStatus sets the booking status and returns the stored booking
func (d *BookingDAO) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.BookingStatus) (*booking.Booking, error) {
	if !status.IsValid() {
		return nil, invalidf("unknown booking status %q", status)
	}
	return d.transition(ctx, id, map[string]interface{}{"status": status})
}

// AssignAgent links the booking to an existing agent
func (d *BookingDAO) AssignAgent(ctx context.Context, id, agentID uuid.UUID) (*booking.Booking, error) {
	if err := requireRow(ctx, d.DB, &agent.Agent{}, agentID, "agent"); err != nil {
		return nil, err
	}
	if err := updateColumns(ctx, d.DB, &booking.Booking{}, id, map[string]interface{}{"agent_id": agentID}); err != nil {
		return nil, err
	}
	return d.GetByID(ctx, id)
}

// Move points the booking at its successor and marks it moved.
// A booking cannot move to itself and the successor must exist.
func (d *BookingDAO) Move(ctx context.Context, id, targetID uuid.UUID) (*booking.Booking, error) {
	if id == targetID {
		return nil, invalidf("booking %s cannot move to itself", id)
	}
	if err := requireRow(ctx, d.DB, &booking.Booking{}, targetID, "booking"); err != nil {
		return nil, err
	}
	return d.transition(ctx, id, map[string]interface{}{
		"moved_to_booking_id": targetID,
		"status":              booking.BookingStatusMoved,
	})
}

// Active returns bookings that are neither cancelled nor completed
func (d *BookingDAO) Active(ctx context.Context) ([]booking.Booking, error) {
	return find[booking.Booking](ctx, d.DB, "status NOT IN ?", booking.InactiveBookingStatuses())
}

// MovedInto returns the bookings whose successor is targetID
func (d *BookingDAO) MovedInto(ctx context.Context, targetID uuid.UUID) ([]booking.Booking, error) {
	return find[booking.Booking](ctx, d.DB, "moved_to_booking_id = ?", targetID)
}

// History returns the status changes of a booking, oldest first
func (d *BookingDAO) History(ctx context.Context, id uuid.UUID) ([]booking.BookingStatusEvent, error) {
	return booking_event.History(d.DB.WithContext(ctx), id)
}
