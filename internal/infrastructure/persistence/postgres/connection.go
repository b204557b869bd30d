// Package postgres provides the PostgreSQL database connection used in
// production deployments.
package postgres

import (
	"fmt"

	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	gormModels "github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/persistence/gorm"
)

// Connect opens a pooled connection and optionally runs migrations.
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := gormLogger.Warn
	if cfg.App.Debug {
		logLevel = gormLogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormLogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(
			&gormModels.UserModel{},
			&gormModels.RecipeModel{},
		); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	log.Info("Connected to PostgreSQL database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	return db, nil
}
