package agent

import (
	"time"

	"github.com/balojey/abdullateef-api/models/enums"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Agent refers clients to the agency and earns commissions on their bookings
type Agent struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName     string        `gorm:"size:100" json:"first_name"`
	LastName      string        `gorm:"size:100" json:"last_name"`
	OtherName     *string       `gorm:"size:100" json:"other_name,omitempty"`
	Sex           *enums.Gender `gorm:"size:10" json:"sex,omitempty"`
	PhoneNumber   *string       `gorm:"size:30;index" json:"phone_number,omitempty"`
	BankName      *string       `gorm:"size:120" json:"bank_name,omitempty"`
	AccountNumber *string       `gorm:"size:50" json:"account_number,omitempty"`
	AgentCode     string        `gorm:"size:50;not null;uniqueIndex" json:"agent_code"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Agent) TableName() string {
	return "agents"
}

func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
