package recipe

import "errors"

// Domain errors for recipe operations

var (
	ErrNameEmpty   = errors.New("recipe name must not be empty")
	ErrNameTooLong = errors.New("recipe name must not exceed 200 characters")
	ErrNoOwner     = errors.New("recipe must have an owner")

	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotRecipeOwner = errors.New("only the recipe owner can perform this action")
)
