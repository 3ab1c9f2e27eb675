package client

import (
	"time"

	"github.com/balojey/abdullateef-api/models/agent"
	"github.com/balojey/abdullateef-api/models/enums"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a pilgrim registered with the agency
type Client struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName      string        `gorm:"size:100;not null" json:"first_name"`
	LastName       string        `gorm:"size:100;not null" json:"last_name"`
	OtherName      *string       `gorm:"size:100" json:"other_name,omitempty"`
	Sex            enums.Gender  `gorm:"size:10;not null" json:"sex"`
	PhoneNumber    string        `gorm:"size:30;not null;index" json:"phone_number"` // E.164 recommended
	PassportNumber string        `gorm:"size:100;not null;uniqueIndex" json:"passport_number"`
	DateOfBirth    *time.Time    `gorm:"type:date" json:"date_of_birth,omitempty"`
	Location       enums.Country `gorm:"size:5;not null;index" json:"location"`

	// Foreign key for the referring agent
	RefereeID *uuid.UUID   `gorm:"type:uuid;index" json:"referee_id,omitempty"`
	Referee   *agent.Agent `gorm:"foreignKey:RefereeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"referee,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
