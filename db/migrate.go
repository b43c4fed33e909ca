package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/meinhoongagan/healthy-alternative/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates or updates every table the API uses.
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.ServiceCategory{},
		&models.Provider{},
		&models.Service{},
		&models.Review{},
		&models.User{},
		&models.Appointment{},
		&models.ProfileView{},
		&models.Session{},
		&models.ProviderApplication{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Seed loads the fixture directory into an empty database. It does nothing
// once any provider exists.
func Seed(ctx context.Context, gdb *gorm.DB, log *zap.Logger) error {
	var existing models.Provider
	err := gdb.WithContext(ctx).Select("id").Take(&existing).Error
	if err == nil {
		log.Info("seed skipped, providers already present")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	f := models.Fixtures(gdb.NowFunc())
	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// one chain per batch; a reused chain keeps the first model
		for _, rows := range []interface{}{&f.Categories, &f.Providers, &f.Services, &f.Reviews} {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error; err != nil {
				return err
			}
		}
		log.Info("seeded fixtures",
			zap.Int("categories", len(f.Categories)),
			zap.Int("providers", len(f.Providers)),
			zap.Int("services", len(f.Services)),
			zap.Int("reviews", len(f.Reviews)),
		)
		return nil
	})
}
