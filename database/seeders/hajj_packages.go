package seeders

import (
	"context"
	"fmt"
	"os"

	"github.com/balojey/abdullateef-api/dao"
	"github.com/balojey/abdullateef-api/logger"
	"github.com/balojey/abdullateef-api/models/hajj_package"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// HajjPackageSeed is one entry of a hajj package seed file
type HajjPackageSeed struct {
	Year             int     `yaml:"year"`
	LocalPrice       int64   `yaml:"local_price"`
	DiasporaPrice    int64   `yaml:"diaspora_price"`
	RegistrationFee  int64   `yaml:"registration_fee"`
	CommissionAmount int64   `yaml:"commission_amount"`
	Description      *string `yaml:"description"`
}

type hajjPackageSeedFile struct {
	HajjPackages []HajjPackageSeed `yaml:"hajj_packages"`
}

// SeedResult counts what a seeding run did
type SeedResult struct {
	Inserted int
	Skipped  int
}

// LoadHajjPackages reads the hajj_packages list from a YAML file
func LoadHajjPackages(path string) ([]HajjPackageSeed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file hajjPackageSeedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return file.HajjPackages, nil
}

// SeedHajjPackages inserts the packages whose year is not in the database yet.
// Every entry is validated like an API create; the first invalid entry stops the run.
func SeedHajjPackages(ctx context.Context, db *gorm.DB, seeds []HajjPackageSeed) (SeedResult, error) {
	logger.Info("Checking hajj package seed data...")

	var existingYears []int
	if err := db.WithContext(ctx).Model(&hajj_package.HajjPackage{}).Distinct().Pluck("year", &existingYears).Error; err != nil {
		return SeedResult{}, fmt.Errorf("failed to fetch existing package years: %w", err)
	}
	existingYearsMap := make(map[int]bool, len(existingYears))
	for _, year := range existingYears {
		existingYearsMap[year] = true
	}

	packages := dao.NewHajjPackageDAO(db)
	var result SeedResult
	for _, seed := range seeds {
		if existingYearsMap[seed.Year] {
			result.Skipped++
			continue
		}

		_, err := packages.Create(ctx, dao.HajjPackageInput{
			Year:             seed.Year,
			LocalPrice:       seed.LocalPrice,
			DiasporaPrice:    seed.DiasporaPrice,
			RegistrationFee:  seed.RegistrationFee,
			CommissionAmount: seed.CommissionAmount,
			Description:      seed.Description,
		})
		if err != nil {
			return result, fmt.Errorf("failed to seed hajj package for %d: %w", seed.Year, err)
		}
		existingYearsMap[seed.Year] = true
		result.Inserted++
		logger.Success(fmt.Sprintf("Added hajj package for %d", seed.Year))
	}

	logger.Info(fmt.Sprintf("Seeding completed: %d inserted, %d skipped", result.Inserted, result.Skipped))
	return result, nil
}
