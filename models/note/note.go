package note

import (
	"time"

	"github.com/balojey/abdullateef-api/models/client"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is a free-text remark about a client
type Note struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   *client.Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"client,omitempty"`

	Content string `gorm:"type:text;not null" json:"content"`
	// Subject of the token that created the note, if any
	CreatedBy *uuid.UUID `gorm:"type:uuid;index" json:"created_by,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Note) TableName() string {
	return "notes"
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
