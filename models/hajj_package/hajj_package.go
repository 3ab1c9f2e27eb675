package hajj_package

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HajjPackage holds the pricing for one Hajj year. Amounts are in the smallest currency unit.
type HajjPackage struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Year            int       `gorm:"not null;index" json:"year"`
	LocalPrice      int64     `gorm:"not null" json:"local_price"`
	DiasporaPrice   int64     `gorm:"not null" json:"diaspora_price"`
	RegistrationFee int64     `gorm:"not null" json:"registration_fee"`
	// per-client commission for that year
	CommissionAmount int64     `gorm:"not null" json:"commission_amount"`
	Description      *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HajjPackage) TableName() string {
	return "hajj_packages"
}

func (p *HajjPackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
