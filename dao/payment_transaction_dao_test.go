package dao_test

import (
	"testing"

	"github.com/balojey/abdullateef-api/dao"
	"github.com/balojey/abdullateef-api/models/payment_transaction"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentTransactionDAO(t *testing.T) {
	ctx, db := setup(t)
	payments := dao.NewPaymentTransactionDAO(db)
	b := createBooking(t, db, createClient(t, db, "Paying", "Pilgrim", nil), createPackage(t, db, 2026, 0), nil)

	_, err := payments.Create(ctx, dao.PaymentTransactionInput{BookingID: b.ID, Amount: -100, PaymentType: payment_transaction.PaymentTypeInstallment})
	assert.ErrorIs(t, err, dao.ErrInvalidInput)
	_, err = payments.Create(ctx, dao.PaymentTransactionInput{BookingID: b.ID, Amount: 100, PaymentType: "refund"})
	assert.ErrorIs(t, err, dao.ErrInvalidInput)
	_, err = payments.Create(ctx, dao.PaymentTransactionInput{BookingID: uuid.New(), Amount: 100, PaymentType: payment_transaction.PaymentTypeInstallment})
	assert.ErrorIs(t, err, dao.ErrInvalidInput)

	registration, err := payments.Create(ctx, dao.PaymentTransactionInput{
		BookingID:   b.ID,
		Amount:      500_000,
		PaymentType: payment_transaction.PaymentTypeRegistration,
	})
	require.NoError(t, err)
	installment, err := payments.Create(ctx, dao.PaymentTransactionInput{
		BookingID:   b.ID,
		Amount:      2_000_000,
		PaymentType: payment_transaction.PaymentTypeInstallment,
	})
	require.NoError(t, err)

	total, err := payments.TotalPaid(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2_500_000), total)

	byBooking, err := payments.GetByBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, byBooking, 2)

	installments, err := payments.GetByPaymentType(ctx, payment_transaction.PaymentTypeInstallment)
	require.NoError(t, err)
	require.Len(t, installments, 1)
	assert.Equal(t, installment.ID, installments[0].ID)

	updated, err := payments.UpdateAmount(ctx, installment.ID, 1_500_000)
	require.NoError(t, err)
	assert.Equal(t, int64(1_500_000), updated.Amount)

	retyped, err := payments.UpdatePaymentType(ctx, registration.ID, payment_transaction.PaymentTypeInstallment)
	require.NoError(t, err)
	assert.Equal(t, payment_transaction.PaymentTypeInstallment, retyped.PaymentType)

	_, err = payments.UpdateAmount(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, dao.ErrNotFound)

	require.NoError(t, payments.Delete(ctx, registration.ID))
	_, err = payments.GetByID(ctx, registration.ID)
	assert.ErrorIs(t, err, dao.ErrNotFound)

	all, err := payments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	total, err = payments.TotalPaid(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, total)
}
