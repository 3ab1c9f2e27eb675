package dao

import (
	"context"

	"github.com/balojey/abdullateef-api/models/booking"
	"github.com/balojey/abdullateef-api/models/payment_transaction"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentTransactionInput holds the fields for a new payment
type PaymentTransactionInput struct {
	BookingID   uuid.UUID                       `validate:"required"`
	Amount      int64                           `validate:"gte=0"`
	PaymentType payment_transaction.PaymentType `validate:"required,oneof=registration installment"`
}

// PaymentTransactionDAO handles payments received against bookings
type PaymentTransactionDAO struct {
	DB *gorm.DB
}

func NewPaymentTransactionDAO(db *gorm.DB) *PaymentTransactionDAO {
	return &PaymentTransactionDAO{DB: db}
}

func (d *PaymentTransactionDAO) Create(ctx context.Context, input PaymentTransactionInput) (*payment_transaction.PaymentTransaction, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := requireRow(ctx, d.DB, &booking.Booking{}, input.BookingID, "booking"); err != nil {
		return nil, err
	}

	payment := &payment_transaction.PaymentTransaction{
		BookingID:   input.BookingID,
		Amount:      input.Amount,
		PaymentType: input.PaymentType,
	}
	if err := d.DB.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, translateError(err)
	}
	return payment, nil
}

func (d *PaymentTransactionDAO) GetByID(ctx context.Context, id uuid.UUID) (*payment_transaction.PaymentTransaction, error) {
	return first[payment_transaction.PaymentTransaction](ctx, d.DB, "id = ?", id)
}

func (d *PaymentTransactionDAO) GetByBooking(ctx context.Context, bookingID uuid.UUID) ([]payment_transaction.PaymentTransaction, error) {
	return find[payment_transaction.PaymentTransaction](ctx, d.DB, "booking_id = ?", bookingID)
}

func (d *PaymentTransactionDAO) GetByPaymentType(ctx context.Context, paymentType payment_transaction.PaymentType) ([]payment_transaction.PaymentTransaction, error) {
	if !paymentType.IsValid() {
		return nil, invalidf("unknown payment type %q", paymentType)
	}
	return find[payment_transaction.PaymentTransaction](ctx, d.DB, "payment_type = ?", paymentType)
}

func (d *PaymentTransactionDAO) List(ctx context.Context) ([]payment_transaction.PaymentTransaction, error) {
	payments := []payment_transaction.PaymentTransaction{}
	if err := d.DB.WithContext(ctx).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (d *PaymentTransactionDAO) UpdateAmount(ctx context.Context, id uuid.UUID, amount int64) (*payment_transaction.PaymentTransaction, error) {
	if amount < 0 {
		return nil, invalidf("payment amount %d is negative", amount)
	}
	if err := updateColumns(ctx, d.DB, &payment_transaction.PaymentTransaction{}, id, map[string]interface{}{"amount": amount}); err != nil {
		return nil, err
	}
	return d.GetByID(ctx, id)
}

func (d *PaymentTransactionDAO) UpdatePaymentType(ctx context.Context, id uuid.UUID, paymentType payment_transaction.PaymentType) (*payment_transaction.PaymentTransaction, error) {
	if !paymentType.IsValid() {
		return nil, invalidf("unknown payment type %q", paymentType)
	}
	if err := updateColumns(ctx, d.DB, &payment_transaction.PaymentTransaction{}, id, map[string]interface{}{"payment_type": paymentType}); err != nil {
		return nil, err
	}
	return d.GetByID(ctx, id)
}

func (d *PaymentTransactionDAO) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, d.DB, &payment_transaction.PaymentTransaction{}, id)
}

// TotalPaid sums every payment recorded against the booking
func (d *PaymentTransactionDAO) TotalPaid(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	var total int64
	err := d.DB.WithContext(ctx).
		Model(&payment_transaction.PaymentTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("booking_id = ?", bookingID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
