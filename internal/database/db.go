package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/subhamroy/case-registry/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens the configured database and runs migrations.
func Initialize(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	case "sqlite":
		dir := filepath.Dir(cfg.DatabasePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dialector = sqlite.Open(cfg.DatabasePath)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Case{},
		&Party{},
		&CaseParty{},
		&CasePartyAdvocate{},
		&LandEntry{},
		&HearingDate{},
		&CaseFile{},
		&User{},
	); err != nil {
		return err
	}
	return createIndexes(db)
}

// createIndexes creates composite indexes AutoMigrate does not cover.
func createIndexes(db *gorm.DB) error {
	// Advocate lookups are always scoped to a case-party-role triple.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_case_party_advocates_link
		ON case_party_advocates(case_id, party_id, party_role)
	`).Error; err != nil {
		return err
	}

	// List view orders by filing date.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_cases_filing_date
		ON cases(filing_date)
	`).Error; err != nil {
		return err
	}

	return nil
}
