package commission

import (
	"time"

	"github.com/balojey/abdullateef-api/models/agent"
	"github.com/balojey/abdullateef-api/models/booking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "pending"
	CommissionStatusPaid    CommissionStatus = "paid"
)

func (cs CommissionStatus) IsValid() bool {
	return cs == CommissionStatusPending || cs == CommissionStatusPaid
}

// Commission is an amount owed to an agent for a referred booking
type Commission struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	AgentID uuid.UUID    `gorm:"type:uuid;not null;index" json:"agent_id"`
	Agent   *agent.Agent `gorm:"foreignKey:AgentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"agent,omitempty"`

	BookingID uuid.UUID        `gorm:"type:uuid;not null;index" json:"booking_id"`
	Booking   *booking.Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"booking,omitempty"`

	CommissionAmount int64            `gorm:"not null" json:"commission_amount"`
	Status           CommissionStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt        time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Commission) TableName() string {
	return "commissions"
}

func (c *Commission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CommissionStatusPending
	}
	return nil
}
