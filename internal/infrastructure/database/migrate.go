package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/veecerts/asset-api/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes. Order matters: referenced
// tables must exist before the tables holding their foreign keys.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	err := db.WithContext(ctx).AutoMigrate(
		&entities.User{},
		&entities.Profile{},
		&entities.SubscriptionPackage{},
		&entities.Client{},
		&entities.ClientPackageSubscription{},
		&entities.ClientUsage{},
		&entities.ClientMonthlyRequests{},
		&entities.Folder{},
		&entities.Asset{},
		&entities.AuthToken{},
		&entities.ClientAuthToken{},
	)
	if err != nil {
		return err
	}
	log.Info().Msg("applied schema migrations")
	return nil
}
