package main

import (
	"context"
	"fmt"
	"os"

	"github.com/balojey/abdullateef-api/config"
	"github.com/balojey/abdullateef-api/database"
	"github.com/balojey/abdullateef-api/database/seeders"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func connect() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	// InitDB migrates as part of connecting
	return database.InitDB(cfg)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Database maintenance for the hajj booking API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table, index and constraint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "🚀 Running database migrations...")
			db, err := connect()
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			defer database.Close(db)
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Migration completed successfully!")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:     "generate <file.sql>",
		Short:   "Write the raw index and constraint SQL to a file for review",
		Example: "  go run tools/migrate.go generate migration.sql",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "📝 Generating migration file: %s\n", args[0])
			return database.GenerateMigrationFile(args[0])
		},
	})

	root.AddCommand(&cobra.Command{
		Use:     "seed <file.yaml>",
		Short:   "Insert hajj packages for years not present yet",
		Example: "  go run tools/migrate.go seed database/seeders/hajj_packages.yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds, err := seeders.LoadHajjPackages(args[0])
			if err != nil {
				return err
			}
			db, err := connect()
			if err != nil {
				return err
			}
			defer database.Close(db)

			result, err := seeders.SeedHajjPackages(context.Background(), db, seeds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🌱 Seeded %d hajj packages, %d already present\n", result.Inserted, result.Skipped)
			return nil
		},
	})

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
