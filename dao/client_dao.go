package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/balojey/abdullateef-api/models/agent"
	"github.com/balojey/abdullateef-api/models/booking"
	"github.com/balojey/abdullateef-api/models/client"
	"github.com/balojey/abdullateef-api/models/enums"
	"github.com/balojey/abdullateef-api/models/note"
	"github.com/balojey/abdullateef-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientInput holds the fields for a new client
type ClientInput struct {
	FirstName      string        `validate:"required,max=100"`
	LastName       string        `validate:"required,max=100"`
	OtherName      *string       `validate:"omitnil,max=100"`
	Sex            enums.Gender  `validate:"required,oneof=male female other"`
	PhoneNumber    string        `validate:"required,max=30"`
	PassportNumber string        `validate:"required,max=100"`
	DateOfBirth    *time.Time    `validate:"-"`
	Location       enums.Country `validate:"required,oneof=NG UK US CA"`
	RefereeID      *uuid.UUID    `validate:"-"`
}

// ClientUpdate lists the client fields to change. Nil fields are left alone.
type ClientUpdate struct {
	FirstName      *string        `validate:"omitnil,min=1,max=100"`
	LastName       *string        `validate:"omitnil,min=1,max=100"`
	OtherName      *string        `validate:"omitnil,max=100"`
	Sex            *enums.Gender  `validate:"omitnil,oneof=male female other"`
	PhoneNumber    *string        `validate:"omitnil,min=1,max=30"`
	PassportNumber *string        `validate:"omitnil,min=1,max=100"`
	DateOfBirth    *time.Time     `validate:"-"`
	Location       *enums.Country `validate:"omitnil,oneof=NG UK US CA"`
	RefereeID      *uuid.UUID     `validate:"-"`
}

func (u ClientUpdate) columns() map[string]interface{} {
	columns := map[string]interface{}{}
	if u.FirstName != nil {
		columns["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		columns["last_name"] = *u.LastName
	}
	if u.OtherName != nil {
		columns["other_name"] = *u.OtherName
	}
	if u.Sex != nil {
		columns["sex"] = *u.Sex
	}
	if u.PhoneNumber != nil {
		columns["phone_number"] = *u.PhoneNumber
	}
	if u.PassportNumber != nil {
		columns["passport_number"] = *u.PassportNumber
	}
	if u.DateOfBirth != nil {
		columns["date_of_birth"] = *u.DateOfBirth
	}
	if u.Location != nil {
		columns["location"] = *u.Location
	}
	if u.RefereeID != nil {
		columns["referee_id"] = *u.RefereeID
	}
	return columns
}

// ClientDAO handles client persistence
type ClientDAO struct {
	DB *gorm.DB
}

func NewClientDAO(db *gorm.DB) *ClientDAO {
	return &ClientDAO{DB: db}
}

func validateDateOfBirth(dob *time.Time) error {
	if dob == nil {
		return nil
	}
	if years, _, _ := utils.CalculateAge(*dob, time.Now()); years < 0 {
		return invalidf("date of birth %s is in the future", dob.Format("2006-01-02"))
	}
	return nil
}

func (d *ClientDAO) checkReferee(ctx context.Context, refereeID *uuid.UUID) error {
	if refereeID == nil {
		return nil
	}
	found, err := exists(ctx, d.DB, &agent.Agent{}, *refereeID)
	if err != nil {
		return err
	}
	if !found {
		return invalidf("referee %s does not exist", refereeID)
	}
	return nil
}

// Create inserts a client. A duplicate passport number returns ErrDuplicate.
func (d *ClientDAO) Create(ctx context.Context, input ClientInput) (*client.Client, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := validateDateOfBirth(input.DateOfBirth); err != nil {
		return nil, err
	}
	if err := d.checkReferee(ctx, input.RefereeID); err != nil {
		return nil, err
	}

	newClient := &client.Client{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		OtherName:      input.OtherName,
		Sex:            input.Sex,
		PhoneNumber:    input.PhoneNumber,
		PassportNumber: input.PassportNumber,
		DateOfBirth:    input.DateOfBirth,
		Location:       input.Location,
		RefereeID:      input.RefereeID,
	}
	if err := d.DB.WithContext(ctx).Create(newClient).Error; err != nil {
		return nil, translateError(err)
	}
	return newClient, nil
}

func (d *ClientDAO) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	return first[client.Client](ctx, d.DB, "id = ?", id)
}

// List returns every client, newest first
func (d *ClientDAO) List(ctx context.Context) ([]client.Client, error) {
	clients := []client.Client{}
	if err := d.DB.WithContext(ctx).Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (d *ClientDAO) GetByPassport(ctx context.Context, passportNumber string) (*client.Client, error) {
	return first[client.Client](ctx, d.DB, "passport_number = ?", passportNumber)
}

func (d *ClientDAO) GetByPhone(ctx context.Context, phoneNumber string) (*client.Client, error) {
	return first[client.Client](ctx, d.DB, "phone_number = ?", phoneNumber)
}

func (d *ClientDAO) GetByLocation(ctx context.Context, location enums.Country) ([]client.Client, error) {
	return find[client.Client](ctx, d.DB, "location = ?", location)
}

// SearchByName matches name case-insensitively against the first, last or other name
func (d *ClientDAO) SearchByName(ctx context.Context, name string) ([]client.Client, error) {
	pattern := containsPattern(name)
	return find[client.Client](ctx, d.DB,
		ilike("first_name")+" OR "+ilike("last_name")+" OR "+ilike("other_name"),
		pattern, pattern, pattern,
	)
}

// GetByReferee returns the clients referred by the agent with the given id
func (d *ClientDAO) GetByReferee(ctx context.Context, agentID uuid.UUID) ([]client.Client, error) {
	return find[client.Client](ctx, d.DB, "referee_id = ?", agentID)
}

// GetByRefereeCode returns the clients referred by the agent holding code
func (d *ClientDAO) GetByRefereeCode(ctx context.Context, code string) ([]client.Client, error) {
	clients := []client.Client{}
	err := d.DB.WithContext(ctx).
		Select("clients.*").
		Joins("JOIN agents ON agents.id = clients.referee_id").
		Where("agents.agent_code = ?", code).
		Order("clients.created_at DESC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// Update applies the non-nil fields of update and returns the stored client
func (d *ClientDAO) Update(ctx context.Context, id uuid.UUID, update ClientUpdate) (*client.Client, error) {
	if err := validateInput(update); err != nil {
		return nil, err
	}
	if err := validateDateOfBirth(update.DateOfBirth); err != nil {
		return nil, err
	}
	if err := d.checkReferee(ctx, update.RefereeID); err != nil {
		return nil, err
	}
	if err := updateColumns(ctx, d.DB, &client.Client{}, id, update.columns()); err != nil {
		return nil, err
	}
	return d.GetByID(ctx, id)
}

// Delete removes a client with its notes and bookings in one transaction.
// The bookings take their payments, commissions and status history with them.
func (d *ClientDAO) Delete(ctx context.Context, id uuid.UUID) error {
	return d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := exists(ctx, tx, &client.Client{}, id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}

		var bookingIDs []uuid.UUID
		if err := tx.Model(&booking.Booking{}).Where("client_id = ?", id).Pluck("id", &bookingIDs).Error; err != nil {
			return fmt.Errorf("failed to load client bookings: %w", err)
		}
		if err := deleteBookings(tx, bookingIDs); err != nil {
			return err
		}

		if err := tx.Where("client_id = ?", id).Delete(&note.Note{}).Error; err != nil {
			return fmt.Errorf("failed to delete client notes: %w", err)
		}

		return deleteByID(ctx, tx, &client.Client{}, id)
	})
}
