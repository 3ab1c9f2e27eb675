package payment_transaction

import (
	"time"

	"github.com/balojey/abdullateef-api/models/booking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentType string

const (
	PaymentTypeRegistration PaymentType = "registration"
	PaymentTypeInstallment  PaymentType = "installment"
)

func (pt PaymentType) IsValid() bool {
	return pt == PaymentTypeRegistration || pt == PaymentTypeInstallment
}

// PaymentTransaction is money received against a booking
type PaymentTransaction struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BookingID uuid.UUID        `gorm:"type:uuid;not null;index" json:"booking_id"`
	Booking   *booking.Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"booking,omitempty"`

	// smallest currency unit
	Amount      int64       `gorm:"not null" json:"amount"`
	PaymentType PaymentType `gorm:"size:20;not null;index" json:"payment_type"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}

func (p *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
