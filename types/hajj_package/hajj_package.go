package hajj_package

import (
	"github.com/balojey/abdullateef-api/dao"
	"github.com/balojey/abdullateef-api/types"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// HajjPackageCreateRequest is the body of POST /api/hajj-packages.
// Numbers are pointers so a missing field fails "required" instead of reading as zero.
type HajjPackageCreateRequest struct {
	Year             *int    `json:"year" validate:"required,gte=2000"`
	LocalPrice       *int64  `json:"local_price" validate:"required,gte=0"`
	DiasporaPrice    *int64  `json:"diaspora_price" validate:"required,gte=0"`
	RegistrationFee  *int64  `json:"registration_fee" validate:"required,gte=0"`
	CommissionAmount *int64  `json:"commission_amount" validate:"required,gte=0"`
	Description      *string `json:"description" validate:"omitnil,max=1000"`
}

func (r HajjPackageCreateRequest) Validate() []types.FieldError {
	return types.ValidateStruct(r)
}

// ToInput must only be called after Validate passed
func (r HajjPackageCreateRequest) ToInput() dao.HajjPackageInput {
	return dao.HajjPackageInput{
		Year:             *r.Year,
		LocalPrice:       *r.LocalPrice,
		DiasporaPrice:    *r.DiasporaPrice,
		RegistrationFee:  *r.RegistrationFee,
		CommissionAmount: *r.CommissionAmount,
		Description:      r.Description,
	}
}

// HajjPackageUpdateRequest is the body of PUT /api/hajj-packages/:id. Omitted fields keep their value.
type HajjPackageUpdateRequest struct {
	Year             *int    `json:"year" validate:"omitnil,gte=2000"`
	LocalPrice       *int64  `json:"local_price" validate:"omitnil,gte=0"`
	DiasporaPrice    *int64  `json:"diaspora_price" validate:"omitnil,gte=0"`
	RegistrationFee  *int64  `json:"registration_fee" validate:"omitnil,gte=0"`
	CommissionAmount *int64  `json:"commission_amount" validate:"omitnil,gte=0"`
	Description      *string `json:"description" validate:"omitnil,max=1000"`
}

func (r HajjPackageUpdateRequest) Validate() []types.FieldError {
	return types.ValidateStruct(r)
}

func (r HajjPackageUpdateRequest) ToUpdate() dao.HajjPackageUpdate {
	return dao.HajjPackageUpdate{
		Year:             r.Year,
		LocalPrice:       r.LocalPrice,
		DiasporaPrice:    r.DiasporaPrice,
		RegistrationFee:  r.RegistrationFee,
		CommissionAmount: r.CommissionAmount,
		Description:      r.Description,
	}
}

// HajjPackageListQuery holds the pagination query of GET /api/hajj-packages
type HajjPackageListQuery struct {
	Limit  int `query:"limit" json:"limit" validate:"gte=1,lte=500"`
	Offset int `query:"offset" json:"offset" validate:"gte=0"`
}

func (q HajjPackageListQuery) Validate() []types.FieldError {
	return types.ValidateStruct(q)
}
