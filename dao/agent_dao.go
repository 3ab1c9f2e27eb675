package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/balojey/abdullateef-api/logger"
	"github.com/balojey/abdullateef-api/models/agent"
	"github.com/balojey/abdullateef-api/models/booking"
	"github.com/balojey/abdullateef-api/models/client"
	"github.com/balojey/abdullateef-api/models/commission"
	"github.com/balojey/abdullateef-api/models/enums"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultAgentListLimit = 50

// AgentInput holds the fields for a new agent. An empty AgentCode is generated.
type AgentInput struct {
	FirstName     string        `validate:"required,max=100"`
	LastName      string        `validate:"required,max=100"`
	OtherName     *string       `validate:"omitnil,max=100"`
	Sex           *enums.Gender `validate:"omitnil,oneof=male female other"`
	PhoneNumber   *string       `validate:"omitnil,max=30"`
	BankName      *string       `validate:"omitnil,max=120"`
	AccountNumber *string       `validate:"omitnil,max=50"`
	AgentCode     string        `validate:"max=50"`
}

// AgentUpdate lists the agent fields to change. Nil fields are left alone.
type AgentUpdate struct {
	FirstName     *string       `validate:"omitnil,min=1,max=100"`
	LastName      *string       `validate:"omitnil,min=1,max=100"`
	OtherName     *string       `validate:"omitnil,max=100"`
	Sex           *enums.Gender `validate:"omitnil,oneof=male female other"`
	PhoneNumber   *string       `validate:"omitnil,max=30"`
	BankName      *string       `validate:"omitnil,max=120"`
	AccountNumber *string       `validate:"omitnil,max=50"`
	AgentCode     *string       `validate:"omitnil,min=1,max=50"`
}

func (u AgentUpdate) columns() map[string]interface{} {
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
	if u.BankName != nil {
		columns["bank_name"] = *u.BankName
	}
	if u.AccountNumber != nil {
		columns["account_number"] = *u.AccountNumber
	}
	if u.AgentCode != nil {
		columns["agent_code"] = *u.AgentCode
	}
	return columns
}

// AgentDAO handles agent persistence and referral codes
type AgentDAO struct {
	DB           *gorm.DB
	GenerateCode CodeGenerator
}

// NewAgentDAO creates a new agent DAO using the crypto/rand code generator
func NewAgentDAO(db *gorm.DB) *AgentDAO {
	return &AgentDAO{
		DB:           db,
		GenerateCode: GenerateAgentCode,
	}
}

// Create inserts an agent. Without an explicit code a free one is generated,
// and an insert that loses a race on the unique index retries with a new code.
func (d *AgentDAO) Create(ctx context.Context, input AgentInput) (*agent.Agent, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	newAgent := &agent.Agent{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		OtherName:     input.OtherName,
		Sex:           input.Sex,
		PhoneNumber:   input.PhoneNumber,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		AgentCode:     input.AgentCode,
	}

	if input.AgentCode != "" {
		if err := d.DB.WithContext(ctx).Create(newAgent).Error; err != nil {
			return nil, translateError(err)
		}
		return newAgent, nil
	}

	err := d.withFreeCode(ctx, func(code string) error {
		newAgent.AgentCode = code
		return d.DB.WithContext(ctx).Create(newAgent).Error
	})
	if err != nil {
		return nil, err
	}
	return newAgent, nil
}

// withFreeCode hands unused codes to write until it succeeds, fails for a reason
// other than a duplicate, or MaxCodeAttempts candidates have been tried.
func (d *AgentDAO) withFreeCode(ctx context.Context, write func(code string) error) error {
	for attempt := 1; attempt <= MaxCodeAttempts; attempt++ {
		code, err := d.GenerateCode()
		if err != nil {
			return fmt.Errorf("failed to generate agent code: %w", err)
		}

		taken, err := d.codeExists(ctx, code)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		err = translateError(write(code))
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrDuplicate) {
			return err
		}
		logger.Warning(fmt.Sprintf("Agent code %s was taken concurrently, retrying (attempt %d)", code, attempt))
	}
	return ErrCodeSpaceExhausted
}

func (d *AgentDAO) codeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := d.DB.WithContext(ctx).Model(&agent.Agent{}).Where("agent_code = ?", code).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check agent code: %w", err)
	}
	return count > 0, nil
}

func (d *AgentDAO) GetByID(ctx context.Context, id uuid.UUID) (*agent.Agent, error) {
	return first[agent.Agent](ctx, d.DB, "id = ?", id)
}

func (d *AgentDAO) GetByCode(ctx context.Context, code string) (*agent.Agent, error) {
	return first[agent.Agent](ctx, d.DB, "agent_code = ?", code)
}

func (d *AgentDAO) GetByPhone(ctx context.Context, phoneNumber string) (*agent.Agent, error) {
	return first[agent.Agent](ctx, d.DB, "phone_number = ?", phoneNumber)
}

// FilterByName matches first and last name as case-insensitive substrings.
// Empty filters are ignored.
func (d *AgentDAO) FilterByName(ctx context.Context, firstName, lastName string) ([]agent.Agent, error) {
	query := d.DB.WithContext(ctx).Model(&agent.Agent{})
	if firstName != "" {
		query = query.Where(ilike("first_name"), containsPattern(firstName))
	}
	if lastName != "" {
		query = query.Where(ilike("last_name"), containsPattern(lastName))
	}

	agents := []agent.Agent{}
	if err := query.Order("created_at DESC").Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

// List returns a page of agents, 50 per page unless limit is set
func (d *AgentDAO) List(ctx context.Context, limit, offset int) ([]agent.Agent, error) {
	agents := []agent.Agent{}
	err := d.DB.WithContext(ctx).
		Scopes(paginate(limit, offset, defaultAgentListLimit)).
		Order("created_at DESC").
		Find(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}

// Update applies the non-nil fields of update and returns the stored agent
func (d *AgentDAO) Update(ctx context.Context, id uuid.UUID, update AgentUpdate) (*agent.Agent, error) {
	if err := validateInput(update); err != nil {
		return nil, err
	}
	if err := updateColumns(ctx, d.DB, &agent.Agent{}, id, update.columns()); err != nil {
		return nil, err
	}
	return d.GetByID(ctx, id)
}

// RegenerateCode assigns a fresh generated code to an existing agent
func (d *AgentDAO) RegenerateCode(ctx context.Context, id uuid.UUID) (*agent.Agent, error) {
	if _, err := d.GetByID(ctx, id); err != nil {
		return nil, err
	}

	err := d.withFreeCode(ctx, func(code string) error {
		return d.DB.WithContext(ctx).Model(&agent.Agent{}).Where("id = ?", id).Update("agent_code", code).Error
	})
	if err != nil {
		return nil, err
	}
	return d.GetByID(ctx, id)
}

// Delete removes an agent. Referred clients and bookings keep their rows with the
// agent link cleared; an agent with recorded commissions cannot be deleted.
func (d *AgentDAO) Delete(ctx context.Context, id uuid.UUID) error {
	return d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commissions int64
		if err := tx.Model(&commission.Commission{}).Where("agent_id = ?", id).Count(&commissions).Error; err != nil {
			return err
		}
		if commissions > 0 {
			return fmt.Errorf("%w: agent has %d commissions", ErrReferenced, commissions)
		}

		if err := tx.Model(&client.Client{}).Where("referee_id = ?", id).Update("referee_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach referred clients: %w", err)
		}
		if err := tx.Model(&booking.Booking{}).Where("agent_id = ?", id).Update("agent_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach bookings: %w", err)
		}

		return deleteByID(ctx, tx, &agent.Agent{}, id)
	})
}

// Bookings returns the bookings handled by the agent
func (d *AgentDAO) Bookings(ctx context.Context, id uuid.UUID) ([]booking.Booking, error) {
	return find[booking.Booking](ctx, d.DB, "agent_id = ?", id)
}

// Commissions returns the commissions owed to the agent
func (d *AgentDAO) Commissions(ctx context.Context, id uuid.UUID) ([]commission.Commission, error) {
	return find[commission.Commission](ctx, d.DB, "agent_id = ?", id)
}

// ReferredClients returns the clients the agent referred
func (d *AgentDAO) ReferredClients(ctx context.Context, id uuid.UUID) ([]client.Client, error) {
	return find[client.Client](ctx, d.DB, "referee_id = ?", id)
}
