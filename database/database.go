package database

import (
	"fmt"
	"log/slog"

	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/domain/artists"
	"cradle-api/internal/domain/exhibitions"
	"cradle-api/internal/domain/partners"
	"cradle-api/internal/domain/tags"
	"cradle-api/internal/domain/works"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Models is every table the service owns, in migration order.
func Models() []any {
	return []any{
		// identity
		&accounts.Account{},
		&artists.Profile{},

		// works
		&works.Collection{},
		&works.Artwork{},
		&tags.Tag{},
		&works.ArtworkTag{},

		// exhibitions
		&partners.Partner{},
		&exhibitions.Exhibition{},
		&exhibitions.ExhibitionArtwork{},
		&exhibitions.PartnerExhibition{},
	}
}

// Open connects to PostgreSQL.
func Open(dsn string, debug bool) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_URL not set")
	}

	level := logger.Warn
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// InitDB connects, migrates and sets DB.
func InitDB(dsn string, debug bool) error {
	db, err := Open(dsn, debug)
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	slog.Info("Connected and migrated successfully")
	return nil
}
