package database

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/balojey/abdullateef-api/logger"
	"github.com/balojey/abdullateef-api/models/agent"
	"github.com/balojey/abdullateef-api/models/booking"
	"github.com/balojey/abdullateef-api/models/client"
	"github.com/balojey/abdullateef-api/models/commission"
	"github.com/balojey/abdullateef-api/models/hajj_package"
	"github.com/balojey/abdullateef-api/models/log"
	"github.com/balojey/abdullateef-api/models/note"
	"github.com/balojey/abdullateef-api/models/payment_transaction"

	"gorm.io/gorm"
)

// MigrationStatement is one raw SQL step run after AutoMigrate
type MigrationStatement struct {
	Name        string
	Table       string
	Description string
	SQL         string
	// PostgresOnly statements are skipped on other dialects.
	PostgresOnly bool
}

// Migrate creates or updates every table, then the extra indexes and constraints.
func Migrate(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		return err
	}
	logger.Success("All model migrations completed successfully")

	if err := createIndexes(db); err != nil {
		return err
	}
	logger.Success("All indexes created successfully")

	if err := createCheckConstraints(db); err != nil {
		return err
	}
	return nil
}

// autoMigrate runs auto migration in dependency order
func autoMigrate(db *gorm.DB) error {
	stages := [][]interface{}{
		// Stage 1: tables without foreign keys
		{&agent.Agent{}, &hajj_package.HajjPackage{}},
		// Stage 2: clients reference agents
		{&client.Client{}},
		// Stage 3: bookings reference clients, packages and agents
		{&booking.Booking{}},
		// Stage 4: rows hanging off bookings and clients
		{
			&booking.BookingStatusEvent{},
			&commission.Commission{},
			&payment_transaction.PaymentTransaction{},
			&note.Note{},
		},
		// Stage 5: request logging
		{&log.Log{}},
	}

	for _, models := range stages {
		for _, model := range models {
			if err := db.AutoMigrate(model); err != nil {
				return fmt.Errorf("failed to migrate %T: %w", model, err)
			}
		}
	}
	return nil
}

// Indexes returns the indexes gorm tags cannot express
func Indexes() []MigrationStatement {
	return []MigrationStatement{
		{
			Name:        "idx_agents_lower_first_name",
			Table:       "agents",
			Description: "case-insensitive agent first name lookups",
			SQL:         "CREATE INDEX IF NOT EXISTS idx_agents_lower_first_name ON agents (lower(first_name))",
		},
		{
			Name:        "idx_agents_lower_last_name",
			Table:       "agents",
			Description: "case-insensitive agent last name lookups",
			SQL:         "CREATE INDEX IF NOT EXISTS idx_agents_lower_last_name ON agents (lower(last_name))",
		},
		{
			Name:        "idx_clients_lower_names",
			Table:       "clients",
			Description: "case-insensitive client name search",
			SQL:         "CREATE INDEX IF NOT EXISTS idx_clients_lower_names ON clients (lower(first_name), lower(last_name))",
		},
		{
			Name:        "idx_bookings_client_status",
			Table:       "bookings",
			Description: "bookings of a client by status",
			SQL:         "CREATE INDEX IF NOT EXISTS idx_bookings_client_status ON bookings (client_id, status)",
		},
		{
			Name:        "idx_commissions_agent_created_at",
			Table:       "commissions",
			Description: "monthly commission totals per agent",
			SQL:         "CREATE INDEX IF NOT EXISTS idx_commissions_agent_created_at ON commissions (agent_id, created_at)",
		},
	}
}

// CheckConstraints returns the non-negative amount rules enforced by PostgreSQL
func CheckConstraints() []MigrationStatement {
	return []MigrationStatement{
		{
			Name:         "chk_hajj_packages_amounts",
			Table:        "hajj_packages",
			Description:  "hajj package prices are non-negative",
			SQL:          `ALTER TABLE hajj_packages ADD CONSTRAINT chk_hajj_packages_amounts CHECK (local_price >= 0 AND diaspora_price >= 0 AND registration_fee >= 0 AND commission_amount >= 0)`,
			PostgresOnly: true,
		},
		{
			Name:         "chk_commissions_amount",
			Table:        "commissions",
			Description:  "commission amounts are non-negative",
			SQL:          `ALTER TABLE commissions ADD CONSTRAINT chk_commissions_amount CHECK (commission_amount >= 0)`,
			PostgresOnly: true,
		},
		{
			Name:         "chk_payment_transactions_amount",
			Table:        "payment_transactions",
			Description:  "payment amounts are non-negative",
			SQL:          `ALTER TABLE payment_transactions ADD CONSTRAINT chk_payment_transactions_amount CHECK (amount >= 0)`,
			PostgresOnly: true,
		},
		{
			Name:         "chk_bookings_not_moved_to_self",
			Table:        "bookings",
			Description:  "a booking never moves to itself",
			SQL:          `ALTER TABLE bookings ADD CONSTRAINT chk_bookings_not_moved_to_self CHECK (moved_to_booking_id IS NULL OR moved_to_booking_id <> id)`,
			PostgresOnly: true,
		},
	}
}

func createIndexes(db *gorm.DB) error {
	for _, stmt := range Indexes() {
		if err := db.Exec(stmt.SQL).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", stmt.Name, err)
		}
	}
	return nil
}

// createCheckConstraints adds each constraint unless it already exists
func createCheckConstraints(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		logger.Debug("Skipping check constraints on " + db.Dialector.Name())
		return nil
	}

	checkSQL := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE constraint_name = $1
		)
	`
	for _, constraint := range CheckConstraints() {
		var exists bool
		if err := db.Raw(checkSQL, constraint.Name).Scan(&exists).Error; err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.Name, err))
			continue
		}
		if exists {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.Name))
			continue
		}
		if err := db.Exec(constraint.SQL).Error; err != nil {
			return fmt.Errorf("failed to create constraint %s: %w", constraint.Name, err)
		}
		logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.Name))
	}
	return nil
}

// GenerateMigrationFile writes the raw SQL steps to filename for manual review
func GenerateMigrationFile(filename string) error {
	var b strings.Builder
	statements := append(Indexes(), CheckConstraints()...)

	fmt.Fprintf(&b, "-- Migration generated on %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "-- %d statements\n\n", len(statements))
	for i, stmt := range statements {
		fmt.Fprintf(&b, "-- [%d] %s\n", i+1, stmt.Description)
		b.WriteString(stmt.SQL + ";\n\n")
	}

	if err := os.WriteFile(filename, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write migration file: %w", err)
	}
	logger.Success(fmt.Sprintf("Migration file generated: %s", filename))
	return nil
}
