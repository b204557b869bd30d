// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"
	"net/http"

	aiapp "github.com/YoungCoderX/Recipe-Rack/internal/application/ai"
	"github.com/YoungCoderX/Recipe-Rack/internal/application/auth"
	"github.com/YoungCoderX/Recipe-Rack/internal/application/recipe"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/ai/openai"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/cache"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/config"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/http/apiserver"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/monitoring"
	gormRepo "github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/persistence/gorm"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/persistence/memory"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/persistence/postgres"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/persistence/sqlite"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/security"
	"github.com/YoungCoderX/Recipe-Rack/internal/ports/outbound"
	"github.com/YoungCoderX/Recipe-Rack/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
	func(log *zap.Logger) *zap.SugaredLogger {
		return log.Sugar()
	},
)

// DatabaseModule provides the GORM connection, selecting the driver
// from configuration. SQLite is the default for local runs.
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		switch cfg.Database.Driver {
		case "postgres":
			return postgres.Connect(cfg, log)
		case "sqlite", "":
			dbPath := ":memory:"
			if cfg.Database.Database != "" {
				dbPath = cfg.Database.Database + ".db"
			}

			logLevel := gormLogger.Silent
			if cfg.App.Debug {
				logLevel = gormLogger.Info
			}

			db, err := sqlite.SetupDatabase(dbPath, logLevel)
			if err != nil {
				return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
			}

			if cfg.Database.SeedDemoData {
				if err := sqlite.SeedDatabase(db); err != nil {
					log.Warn("Failed to seed database", zap.Error(err))
				}
			}

			log.Info("Connected to SQLite database",
				zap.String("path", dbPath),
				zap.Bool("in_memory", dbPath == ":memory:"),
			)

			return db, nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
		}
	},
)

// CacheModule provides the cache repository, backed by Redis when
// enabled and the in-memory store otherwise.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if !cfg.Redis.Enabled {
			log.Info("Redis disabled, using in-memory cache")
			return memory.NewCacheRepository(), nil
		}

		client, err := cache.NewRedisClient(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		return cache.NewRedisCacheRepository(client), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
	gormRepo.NewUserRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	security.NewAuthService,

	fx.Annotate(
		openai.NewClient,
		fx.As(new(outbound.AIService)),
	),

	recipe.NewRecipeService,
	auth.NewService,
	aiapp.NewService,
)

// HTTPModule provides the HTTP server and metrics registry
var HTTPModule = fx.Provide(
	monitoring.NewMetrics,
	apiserver.NewAPIServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Recipe Rack",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Recipe Rack")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
