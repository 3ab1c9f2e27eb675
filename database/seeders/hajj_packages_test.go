package seeders_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/balojey/abdullateef-api/dao"
	"github.com/balojey/abdullateef-api/database/dbtest"
	"github.com/balojey/abdullateef-api/database/seeders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHajjPackages_ShippedFile(t *testing.T) {
	seeds, err := seeders.LoadHajjPackages("hajj_packages.yaml")
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, 2025, seeds[0].Year)
	assert.Equal(t, int64(12000000), seeds[1].CommissionAmount)
	require.NotNil(t, seeds[1].Description)
}

func TestSeedHajjPackages_SkipsExistingYears(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	seeds := []seeders.HajjPackageSeed{
		{Year: 2025, LocalPrice: 1, DiasporaPrice: 2, RegistrationFee: 3, CommissionAmount: 4},
		{Year: 2026, LocalPrice: 5, DiasporaPrice: 6, RegistrationFee: 7, CommissionAmount: 8},
		{Year: 2026, LocalPrice: 9, DiasporaPrice: 9, RegistrationFee: 9, CommissionAmount: 9},
	}

	result, err := seeders.SeedHajjPackages(ctx, db, seeds)
	require.NoError(t, err)
	assert.Equal(t, seeders.SeedResult{Inserted: 2, Skipped: 1}, result)

	result, err = seeders.SeedHajjPackages(ctx, db, seeds)
	require.NoError(t, err)
	assert.Equal(t, seeders.SeedResult{Inserted: 0, Skipped: 3}, result)

	stored, err := dao.NewHajjPackageDAO(db).GetByYear(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, int64(5), stored[0].LocalPrice)
}

func TestSeedHajjPackages_RejectsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hajj_packages:\n  - year: 1999\n    local_price: 10\n"), 0o644))

	seeds, err := seeders.LoadHajjPackages(path)
	require.NoError(t, err)

	_, err = seeders.SeedHajjPackages(context.Background(), dbtest.New(t), seeds)
	assert.ErrorIs(t, err, dao.ErrInvalidInput)

	_, err = seeders.LoadHajjPackages(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
