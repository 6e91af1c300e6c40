package database

import (
	"fmt"
	"portrait-backend/internal/common/models"
	"portrait-backend/internal/pkg/logger"
)

func (db *Database) RunMigrations() error {
	logger.Info.Println("Starting database migrations...")

	if db.Config.Driver == POSTGRES {
		if err := db.createExtensions(); err != nil {
			return fmt.Errorf("failed to create extensions: %w", err)
		}
	}

	// Define models in dependency order
	entities := []interface{}{
		&models.Booking{},
		&models.Payment{},
		&models.Post{},
	}

	for _, model := range entities {
		logger.Info.Printf("Migrating model: %T", model)
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	if err := db.createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Info.Println("Database migrations completed successfully")
	return nil
}

func (db *Database) createExtensions() error {
	query := `CREATE EXTENSION IF NOT EXISTS "pgcrypto";`
	return db.Exec(query).Error
}

func (db *Database) createIndexes() error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_payments_created_at ON payments(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_posts_locale ON posts(locale);`,
	}

	// MySQL has no CREATE INDEX IF NOT EXISTS
	if db.Config.Driver == MYSQL {
		return nil
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
