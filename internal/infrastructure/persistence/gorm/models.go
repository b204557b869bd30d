// Package gorm provides GORM model definitions and repository
// implementations for the application.
package gorm

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        *string   `gorm:"type:varchar(255);uniqueIndex"` // nil for anonymous users
	Name         string    `gorm:"type:varchar(255)"`
	PasswordHash string    `gorm:"type:varchar(255)"`
	Anonymous    bool      `gorm:"default:false;index"`
	CreatedAt    time.Time
	LastSeenAt   time.Time

	Recipes []RecipeModel `gorm:"foreignKey:OwnerID"`
}

// TableName overrides the table name
func (UserModel) TableName() string {
	return "users"
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	OwnerID      uuid.UUID `gorm:"type:char(36);not null;index:idx_recipes_owner_created,priority:1"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Ingredients  string    `gorm:"type:text"`
	Instructions string    `gorm:"type:text"`

	AIGenerated bool   `gorm:"default:false"`
	AIPrompt    string `gorm:"type:text"`
	AIModel     string `gorm:"type:varchar(100)"`

	CreatedAt time.Time `gorm:"index:idx_recipes_owner_created,priority:2,sort:desc"`

	Owner UserModel `gorm:"foreignKey:OwnerID"`
}

// TableName overrides the table name
func (RecipeModel) TableName() string {
	return "recipes"
}
