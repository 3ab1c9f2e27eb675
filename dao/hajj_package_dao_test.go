package dao_test

import (
	"testing"

	"github.com/balojey/abdullateef-api/dao"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHajjPackageDAO_Create_Validation(t *testing.T) {
	ctx, db := setup(t)
	packages := dao.NewHajjPackageDAO(db)

	cases := map[string]dao.HajjPackageInput{
		"year before 2000":      {Year: 1999},
		"negative local price":  {Year: 2026, LocalPrice: -1},
		"negative diaspora":     {Year: 2026, DiasporaPrice: -1},
		"negative registration": {Year: 2026, RegistrationFee: -1},
		"negative commission":   {Year: 2026, CommissionAmount: -1},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := packages.Create(ctx, input)
			assert.ErrorIs(t, err, dao.ErrInvalidInput)
		})
	}

	free, err := packages.Create(ctx, dao.HajjPackageInput{Year: 2000})
	require.NoError(t, err)
	assert.Equal(t, int64(0), free.LocalPrice)
}

func TestHajjPackageDAO_CRUD(t *testing.T) {
	ctx, db := setup(t)
	packages := dao.NewHajjPackageDAO(db)

	pkg, err := packages.Create(ctx, dao.HajjPackageInput{
		Year:             2026,
		LocalPrice:       8_000_000,
		DiasporaPrice:    9_500_000,
		RegistrationFee:  500_000,
		CommissionAmount: 150_000,
		Description:      strPtr("Standard package"),
	})
	require.NoError(t, err)

	stored, err := packages.GetByID(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9_500_000), stored.DiasporaPrice)

	byYear, err := packages.GetByYear(ctx, 2026)
	require.NoError(t, err)
	assert.Len(t, byYear, 1)

	price := int64(8_200_000)
	updated, err := packages.Update(ctx, pkg.ID, dao.HajjPackageUpdate{LocalPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, price, updated.LocalPrice)
	assert.Equal(t, int64(150_000), updated.CommissionAmount)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Standard package", *updated.Description)

	negative := int64(-5)
	_, err = packages.Update(ctx, pkg.ID, dao.HajjPackageUpdate{RegistrationFee: &negative})
	assert.ErrorIs(t, err, dao.ErrInvalidInput)

	_, err = packages.Update(ctx, uuid.New(), dao.HajjPackageUpdate{LocalPrice: &price})
	assert.ErrorIs(t, err, dao.ErrNotFound)

	require.NoError(t, packages.Delete(ctx, pkg.ID))
	_, err = packages.GetByID(ctx, pkg.ID)
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.ErrorIs(t, packages.Delete(ctx, pkg.ID), dao.ErrNotFound)
}

func TestHajjPackageDAO_List(t *testing.T) {
	ctx, db := setup(t)
	packages := dao.NewHajjPackageDAO(db)
	for _, year := range []int{2024, 2026, 2025} {
		createPackage(t, db, year, 0)
	}

	all, err := packages.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 2026, all[0].Year)
	assert.Equal(t, 2024, all[2].Year)

	page, err := packages.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, 2025, page[0].Year)
}

func TestHajjPackageDAO_Delete_WithBookings(t *testing.T) {
	ctx, db := setup(t)
	pkg := createPackage(t, db, 2026, 0)
	createBooking(t, db, createClient(t, db, "Booked", "Pilgrim", nil), pkg, nil)

	assert.ErrorIs(t, dao.NewHajjPackageDAO(db).Delete(ctx, pkg.ID), dao.ErrReferenced)
}
