package booking

import (
	"time"

	"github.com/balojey/abdullateef-api/models/agent"
	"github.com/balojey/abdullateef-api/models/client"
	"github.com/balojey/abdullateef-api/models/enums"
	"github.com/balojey/abdullateef-api/models/hajj_package"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is a client's reservation against a hajj package
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   *client.Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"client,omitempty"`

	PackageID uuid.UUID                 `gorm:"type:uuid;not null;index" json:"package_id"`
	Package   *hajj_package.HajjPackage `gorm:"foreignKey:PackageID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"package,omitempty"`

	AgentID *uuid.UUID   `gorm:"type:uuid;index" json:"agent_id,omitempty"`
	Agent   *agent.Agent `gorm:"foreignKey:AgentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"agent,omitempty"`

	TravellingFrom *enums.Country `gorm:"size:5;index" json:"travelling_from,omitempty"`
	Status         BookingStatus  `gorm:"size:20;not null;default:registered;index" json:"status"`

	// Successor booking when this one was moved
	MovedToBookingID *uuid.UUID `gorm:"type:uuid;index" json:"moved_to_booking_id,omitempty"`
	MovedToBooking   *Booking   `gorm:"foreignKey:MovedToBookingID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"moved_to_booking,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BookingStatusRegistered
	}
	return nil
}
