package dao

import (
	"context"
	"fmt"

	"github.com/balojey/abdullateef-api/models/booking"
	"github.com/balojey/abdullateef-api/models/hajj_package"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultHajjPackageListLimit = 100

// HajjPackageInput holds the pricing for a new package. Amounts are in the smallest currency unit.
type HajjPackageInput struct {
	Year             int     `validate:"gte=2000"`
	LocalPrice       int64   `validate:"gte=0"`
	DiasporaPrice    int64   `validate:"gte=0"`
	RegistrationFee  int64   `validate:"gte=0"`
	CommissionAmount int64   `validate:"gte=0"`
	Description      *string `validate:"omitnil,max=1000"`
}

// HajjPackageUpdate lists the package fields to change. Nil fields are left alone.
type HajjPackageUpdate struct {
	Year             *int    `validate:"omitnil,gte=2000"`
	LocalPrice       *int64  `validate:"omitnil,gte=0"`
	DiasporaPrice    *int64  `validate:"omitnil,gte=0"`
	RegistrationFee  *int64  `validate:"omitnil,gte=0"`
	CommissionAmount *int64  `validate:"omitnil,gte=0"`
	Description      *string `validate:"omitnil,max=1000"`
}

func (u HajjPackageUpdate) columns() map[string]interface{} {
	columns := map[string]interface{}{}
	if u.Year != nil {
		columns["year"] = *u.Year
	}
	if u.LocalPrice != nil {
		columns["local_price"] = *u.LocalPrice
	}
	if u.DiasporaPrice != nil {
		columns["diaspora_price"] = *u.DiasporaPrice
	}
	if u.RegistrationFee != nil {
		columns["registration_fee"] = *u.RegistrationFee
	}
	if u.CommissionAmount != nil {
		columns["commission_amount"] = *u.CommissionAmount
	}
	if u.Description != nil {
		columns["description"] = *u.Description
	}
	return columns
}

// HajjPackageDAO handles hajj package persistence
type HajjPackageDAO struct {
	DB *gorm.DB
}

func NewHajjPackageDAO(db *gorm.DB) *HajjPackageDAO {
	return &HajjPackageDAO{DB: db}
}

func (d *HajjPackageDAO) Create(ctx context.Context, input HajjPackageInput) (*hajj_package.HajjPackage, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	pkg := &hajj_package.HajjPackage{
		Year:             input.Year,
		LocalPrice:       input.LocalPrice,
		DiasporaPrice:    input.DiasporaPrice,
		RegistrationFee:  input.RegistrationFee,
		CommissionAmount: input.CommissionAmount,
		Description:      input.Description,
	}
	if err := d.DB.WithContext(ctx).Create(pkg).Error; err != nil {
		return nil, translateError(err)
	}
	return pkg, nil
}

// List returns a page of packages, latest year first
func (d *HajjPackageDAO) List(ctx context.Context, limit, offset int) ([]hajj_package.HajjPackage, error) {
	packages := []hajj_package.HajjPackage{}
	err := d.DB.WithContext(ctx).
		Scopes(paginate(limit, offset, defaultHajjPackageListLimit)).
		Order("year DESC").
		Order("created_at DESC").
		Find(&packages).Error
	if err != nil {
		return nil, err
	}
	return packages, nil
}

func (d *HajjPackageDAO) GetByID(ctx context.Context, id uuid.UUID) (*hajj_package.HajjPackage, error) {
	return first[hajj_package.HajjPackage](ctx, d.DB, "id = ?", id)
}

// GetByYear returns the packages priced for year
func (d *HajjPackageDAO) GetByYear(ctx context.Context, year int) ([]hajj_package.HajjPackage, error) {
	return find[hajj_package.HajjPackage](ctx, d.DB, "year = ?", year)
}

// Update applies the non-nil fields of update and returns the stored package
func (d *HajjPackageDAO) Update(ctx context.Context, id uuid.UUID, update HajjPackageUpdate) (*hajj_package.HajjPackage, error) {
	if err := validateInput(update); err != nil {
		return nil, err
	}
	if err := updateColumns(ctx, d.DB, &hajj_package.HajjPackage{}, id, update.columns()); err != nil {
		return nil, err
	}
	return d.GetByID(ctx, id)
}

// Delete removes a package that no booking refers to
func (d *HajjPackageDAO) Delete(ctx context.Context, id uuid.UUID) error {
	return d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bookings int64
		if err := tx.Model(&booking.Booking{}).Where("package_id = ?", id).Count(&bookings).Error; err != nil {
			return err
		}
		if bookings > 0 {
			return fmt.Errorf("%w: hajj package has %d bookings", ErrReferenced, bookings)
		}
		return deleteByID(ctx, tx, &hajj_package.HajjPackage{}, id)
	})
}
