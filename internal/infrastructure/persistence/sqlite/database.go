// Package sqlite provides SQLite database setup. SQLite is the default
// driver for development and tests; production deployments use postgres.
package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormModels "github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/persistence/gorm"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&gormModels.UserModel{},
		&gormModels.RecipeModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates the database with demo data. It is a no-op when
// any user already exists.
func SeedDatabase(db *gorm.DB) error {
	var userCount int64
	db.Model(&gormModels.UserModel{}).Count(&userCount)
	if userCount > 0 {
		return nil
	}

	faker := gofakeit.New(0)

	email := "demo@reciperack.dev"
	demoUser := gormModels.UserModel{
		ID:    uuid.New(),
		Email: &email,
		Name:  "Demo Cook",
		// bcrypt hash of "password"
		PasswordHash: "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi",
		CreatedAt:    time.Now(),
		LastSeenAt:   time.Now(),
	}
	if err := db.Create(&demoUser).Error; err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	for i := 0; i < 3; i++ {
		ingredients := make([]string, 4+faker.IntRange(0, 3))
		for j := range ingredients {
			ingredients[j] = fmt.Sprintf("%d %s %s",
				faker.IntRange(1, 4), faker.RandomString([]string{"cups", "tbsp", "tsp", "oz"}), faker.Vegetable())
		}

		demoRecipe := gormModels.RecipeModel{
			ID:          uuid.New(),
			OwnerID:     demoUser.ID,
			Name:        fmt.Sprintf("%s %s", faker.AdjectiveDescriptive(), faker.Dinner()),
			Ingredients: strings.Join(ingredients, "\n"),
			Instructions: strings.Join([]string{
				"1. Prepare all ingredients.",
				"2. Combine and cook over medium heat.",
				"3. Season to taste and serve.",
			}, "\n"),
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Hour),
		}
		if err := db.Create(&demoRecipe).Error; err != nil {
			return fmt.Errorf("failed to seed demo recipe: %w", err)
		}
	}

	return nil
}
