package gorm

import (
	"github.com/YoungCoderX/Recipe-Rack/internal/domain/recipe"
	"github.com/YoungCoderX/Recipe-Rack/internal/domain/user"
)

// RecipeToModel converts a domain recipe to its GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:           r.ID(),
		OwnerID:      r.OwnerID(),
		Name:         r.Name(),
		Ingredients:  r.Ingredients(),
		Instructions: r.Instructions(),
		AIGenerated:  r.IsAIGenerated(),
		AIPrompt:     r.AIPrompt(),
		AIModel:      r.AIModel(),
		CreatedAt:    r.CreatedAt(),
	}
}

// ModelToRecipe converts a GORM model back to the domain entity
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	return recipe.Reconstruct(
		m.ID,
		m.OwnerID,
		m.Name,
		m.Ingredients,
		m.Instructions,
		m.AIGenerated,
		m.AIPrompt,
		m.AIModel,
		m.CreatedAt,
	)
}

// UserToModel converts a domain user to its GORM model
func UserToModel(u *user.User) *UserModel {
	m := &UserModel{
		ID:           u.ID(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Anonymous:    u.IsAnonymous(),
		CreatedAt:    u.CreatedAt(),
		LastSeenAt:   u.LastSeenAt(),
	}
	if email := u.Email(); email != "" {
		m.Email = &email
	}
	return m
}

// ModelToUser converts a GORM model back to the domain entity
func ModelToUser(m *UserModel) *user.User {
	email := ""
	if m.Email != nil {
		email = *m.Email
	}
	return user.Reconstruct(
		m.ID,
		email,
		m.Name,
		m.PasswordHash,
		m.Anonymous,
		m.CreatedAt,
		m.LastSeenAt,
	)
}
