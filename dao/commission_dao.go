package dao

import (
	"context"
	"time"

	"github.com/balojey/abdullateef-api/models/agent"
	"github.com/balojey/abdullateef-api/models/booking"
	"github.com/balojey/abdullateef-api/models/commission"
	"github.com/balojey/abdullateef-api/models/hajj_package"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

const defaultCommissionListLimit = 100

// CommissionInput holds the fields for a new commission. Status defaults to pending.
type CommissionInput struct {
	AgentID          uuid.UUID                   `validate:"required"`
	BookingID        uuid.UUID                   `validate:"required"`
	CommissionAmount int64                       `validate:"gte=0"`
	Status           commission.CommissionStatus `validate:"omitempty,oneof=pending paid"`
}

// CommissionDAO handles agent commissions
type CommissionDAO struct {
	DB *gorm.DB
}

func NewCommissionDAO(db *gorm.DB) *CommissionDAO {
	return &CommissionDAO{DB: db}
}

func (d *CommissionDAO) Create(ctx context.Context, input CommissionInput) (*commission.Commission, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := requireRow(ctx, d.DB, &agent.Agent{}, input.AgentID, "agent"); err != nil {
		return nil, err
	}
	if err := requireRow(ctx, d.DB, &booking.Booking{}, input.BookingID, "booking"); err != nil {
		return nil, err
	}

	c := &commission.Commission{
		AgentID:          input.AgentID,
		BookingID:        input.BookingID,
		CommissionAmount: input.CommissionAmount,
		Status:           input.Status,
	}
	if err := d.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

// CreateForBooking records the commission owed to the booking's agent at the
// package's commission amount. Bookings without an agent are rejected.
func (d *CommissionDAO) CreateForBooking(ctx context.Context, bookingID uuid.UUID) (*commission.Commission, error) {
	b, err := first[booking.Booking](ctx, d.DB, "id = ?", bookingID)
	if err != nil {
		return nil, err
	}
	if b.AgentID == nil {
		return nil, invalidf("booking %s has no agent", bookingID)
	}
	pkg, err := first[hajj_package.HajjPackage](ctx, d.DB, "id = ?", b.PackageID)
	if err != nil {
		return nil, err
	}

	return d.Create(ctx, CommissionInput{
		AgentID:          *b.AgentID,
		BookingID:        b.ID,
		CommissionAmount: pkg.CommissionAmount,
	})
}

func (d *CommissionDAO) GetByID(ctx context.Context, id uuid.UUID) (*commission.Commission, error) {
	return first[commission.Commission](ctx, d.DB, "id = ?", id)
}

func (d *CommissionDAO) GetByAgent(ctx context.Context, agentID uuid.UUID) ([]commission.Commission, error) {
	return find[commission.Commission](ctx, d.DB, "agent_id = ?", agentID)
}

func (d *CommissionDAO) GetByBooking(ctx context.Context, bookingID uuid.UUID) ([]commission.Commission, error) {
	return find[commission.Commission](ctx, d.DB, "booking_id = ?", bookingID)
}

func (d *CommissionDAO) GetByStatus(ctx context.Context, status commission.CommissionStatus, limit, offset int) ([]commission.Commission, error) {
	if !status.IsValid() {
		return nil, invalidf("unknown commission status %q", status)
	}
	commissions := []commission.Commission{}
	err := d.DB.WithContext(ctx).
		Where("status = ?", status).
		Scopes(paginate(limit, offset, defaultCommissionListLimit)).
		Order("created_at DESC").
		Find(&commissions).Error
	if err != nil {
		return nil, err
	}
	return commissions, nil
}

func (d *CommissionDAO) List(ctx context.Context, limit, offset int) ([]commission.Commission, error) {
	commissions := []commission.Commission{}
	err := d.DB.WithContext(ctx).
		Scopes(paginate(limit, offset, defaultCommissionListLimit)).
		Order("created_at DESC").
		Find(&commissions).Error
	if err != nil {
		return nil, err
	}
	return commissions, nil
}

func (d *CommissionDAO) UpdateStatus(ctx context.Context, id uuid.UUID, status commission.CommissionStatus) (*commission.Commission, error) {
	if !status.IsValid() {
		return nil, invalidf("unknown commission status %q", status)
	}
	if err := updateColumns(ctx, d.DB, &commission.Commission{}, id, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	return d.GetByID(ctx, id)
}

func (d *CommissionDAO) UpdateAmount(ctx context.Context, id uuid.UUID, amount int64) (*commission.Commission, error) {
	if amount < 0 {
		return nil, invalidf("commission amount %d is negative", amount)
	}
	if err := updateColumns(ctx, d.DB, &commission.Commission{}, id, map[string]interface{}{"commission_amount": amount}); err != nil {
		return nil, err
	}
	return d.GetByID(ctx, id)
}

func (d *CommissionDAO) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, d.DB, &commission.Commission{}, id)
}

// EarnedInMonth sums the agent's commissions created in the calendar month containing month
func (d *CommissionDAO) EarnedInMonth(ctx context.Context, agentID uuid.UUID, month time.Time) (int64, error) {
	start := now.With(month).BeginningOfMonth()
	end := now.With(month).EndOfMonth()

	var total int64
	err := d.DB.WithContext(ctx).
		Model(&commission.Commission{}).
		Select("COALESCE(SUM(commission_amount), 0)").
		Where("agent_id = ? AND created_at BETWEEN ? AND ?", agentID, start, end).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
