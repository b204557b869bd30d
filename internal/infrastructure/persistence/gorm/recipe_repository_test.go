package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/YoungCoderX/Recipe-Rack/internal/domain/recipe"
	"github.com/YoungCoderX/Recipe-Rack/internal/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&UserModel{}, &RecipeModel{}))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *user.User {
	t.Helper()

	u := user.NewAnonymous()
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func TestRecipeRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	owner := createTestUser(t, db)

	entity, err := recipe.NewRecipe("Ramen", "noodles\nbroth\negg", "Assemble bowl.", owner.ID())
	require.NoError(t, err)
	entity.MarkAIGenerated("quick ramen", "gpt-4o-mini")

	require.NoError(t, repo.Create(ctx, entity))

	found, err := repo.FindByID(ctx, entity.ID())
	require.NoError(t, err)
	assert.Equal(t, entity.ID(), found.ID())
	assert.Equal(t, "Ramen", found.Name())
	assert.Equal(t, "noodles\nbroth\negg", found.Ingredients())
	assert.Equal(t, owner.ID(), found.OwnerID())
	assert.True(t, found.IsAIGenerated())
	assert.Equal(t, "quick ramen", found.AIPrompt())
	assert.WithinDuration(t, entity.CreatedAt(), found.CreatedAt(), time.Second)
}

func TestRecipeRepositoryFindByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}

func TestRecipeRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	owner := createTestUser(t, db)

	entity, err := recipe.NewRecipe("Gone", "", "", owner.ID())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, entity))

	require.NoError(t, repo.Delete(ctx, entity.ID()))

	_, err = repo.FindByID(ctx, entity.ID())
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)

	// Deleting again reports not found
	assert.ErrorIs(t, repo.Delete(ctx, entity.ID()), recipe.ErrRecipeNotFound)
}

func TestRecipeRepositoryFindByOwnerIDOrdering(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	owner := createTestUser(t, db)
	other := createTestUser(t, db)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, name := range []string{"Oldest", "Middle", "Newest"} {
		entity := recipe.Reconstruct(
			uuid.New(), owner.ID(), name, "", "", false, "", "",
			base.Add(time.Duration(i)*time.Hour),
		)
		require.NoError(t, repo.Create(ctx, entity))
	}

	// Another user's recipe must not appear
	noise, err := recipe.NewRecipe("Noise", "", "", other.ID())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, noise))

	recipes, err := repo.FindByOwnerID(ctx, owner.ID())

	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Newest", recipes[0].Name())
	assert.Equal(t, "Middle", recipes[1].Name())
	assert.Equal(t, "Oldest", recipes[2].Name())
}

func TestRecipeRepositoryFindByOwnerIDEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)

	recipes, err := repo.FindByOwnerID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Empty(t, recipes)
}
