package recipe

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RecipeTestSuite provides a test suite for the Recipe entity
type RecipeTestSuite struct {
	suite.Suite
}

func (suite *RecipeTestSuite) TestRecipeCreation() {
	suite.Run("ValidRecipe_ShouldCreateSuccessfully", func() {
		ownerID := uuid.New()

		r, err := NewRecipe("Spaghetti Carbonara", "spaghetti\neggs\npancetta", "Boil pasta, mix with eggs.", ownerID)

		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), r)

		assert.NotEqual(suite.T(), uuid.Nil, r.ID())
		assert.Equal(suite.T(), "Spaghetti Carbonara", r.Name())
		assert.Equal(suite.T(), ownerID, r.OwnerID())
		assert.False(suite.T(), r.IsAIGenerated())
		assert.NotZero(suite.T(), r.CreatedAt())

		events := r.Events()
		require.Len(suite.T(), events, 1)
		created, ok := events[0].(RecipeCreatedEvent)
		require.True(suite.T(), ok, "Should emit RecipeCreatedEvent")
		assert.Equal(suite.T(), r.ID(), created.RecipeID)
		assert.Equal(suite.T(), ownerID, created.OwnerID)
	})

	suite.Run("EmptyName_ShouldReturnError", func() {
		r, err := NewRecipe("", "flour", "Bake.", uuid.New())

		assert.Nil(suite.T(), r)
		assert.Equal(suite.T(), ErrNameEmpty, err)
	})

	suite.Run("WhitespaceName_ShouldReturnError", func() {
		r, err := NewRecipe("   \t", "flour", "Bake.", uuid.New())

		assert.Nil(suite.T(), r)
		assert.Equal(suite.T(), ErrNameEmpty, err)
	})

	suite.Run("NameTooLong_ShouldReturnError", func() {
		r, err := NewRecipe(strings.Repeat("x", 201), "flour", "Bake.", uuid.New())

		assert.Nil(suite.T(), r)
		assert.Equal(suite.T(), ErrNameTooLong, err)
	})

	suite.Run("NilOwner_ShouldReturnError", func() {
		r, err := NewRecipe("Toast", "bread", "Toast it.", uuid.Nil)

		assert.Nil(suite.T(), r)
		assert.Equal(suite.T(), ErrNoOwner, err)
	})

	suite.Run("NameTrimmed_ShouldStoreTrimmed", func() {
		r, err := NewRecipe("  Pancakes  ", "flour\nmilk", "Fry.", uuid.New())

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Pancakes", r.Name())
	})

	suite.Run("EmptyIngredientsAndInstructions_ShouldBeAllowed", func() {
		r, err := NewRecipe("Water", "", "", uuid.New())

		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), r.Ingredients())
		assert.Empty(suite.T(), r.Instructions())
	})
}

func (suite *RecipeTestSuite) TestMarkAIGenerated() {
	r, err := NewRecipe("Miso Soup", "miso\ndashi\ntofu", "Simmer.", uuid.New())
	require.NoError(suite.T(), err)

	r.MarkAIGenerated("a quick japanese soup", "gpt-4o-mini")

	assert.True(suite.T(), r.IsAIGenerated())
	assert.Equal(suite.T(), "a quick japanese soup", r.AIPrompt())
	assert.Equal(suite.T(), "gpt-4o-mini", r.AIModel())
}

func (suite *RecipeTestSuite) TestDelete() {
	ownerID := uuid.New()
	r, err := NewRecipe("Omelette", "eggs\nbutter", "Whisk and fry.", ownerID)
	require.NoError(suite.T(), err)
	r.Events() // drain the creation event

	r.Delete()

	events := r.Events()
	require.Len(suite.T(), events, 1)
	deleted, ok := events[0].(RecipeDeletedEvent)
	require.True(suite.T(), ok, "Should emit RecipeDeletedEvent")
	assert.Equal(suite.T(), r.ID(), deleted.RecipeID)
	assert.Equal(suite.T(), ownerID, deleted.OwnerID)
}

func (suite *RecipeTestSuite) TestOwnedBy() {
	ownerID := uuid.New()
	r, err := NewRecipe("Salad", "lettuce", "Toss.", ownerID)
	require.NoError(suite.T(), err)

	assert.True(suite.T(), r.OwnedBy(ownerID))
	assert.False(suite.T(), r.OwnedBy(uuid.New()))
}

func (suite *RecipeTestSuite) TestIngredientLines() {
	r, err := NewRecipe("Stew", "  beef \n\n carrots\n\tonions\n", "Simmer for hours.", uuid.New())
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), []string{"beef", "carrots", "onions"}, r.IngredientLines())
}

func (suite *RecipeTestSuite) TestEventsAreDrained() {
	r, err := NewRecipe("Tea", "tea leaves", "Steep.", uuid.New())
	require.NoError(suite.T(), err)

	assert.Len(suite.T(), r.Events(), 1)
	assert.Empty(suite.T(), r.Events())
}

func (suite *RecipeTestSuite) TestReconstruct() {
	id := uuid.New()
	ownerID := uuid.New()
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	r := Reconstruct(id, ownerID, "Chili", "beans\nchili", "Cook.", true, "spicy dinner", "gpt-4o-mini", createdAt)

	assert.Equal(suite.T(), id, r.ID())
	assert.Equal(suite.T(), ownerID, r.OwnerID())
	assert.Equal(suite.T(), "Chili", r.Name())
	assert.True(suite.T(), r.IsAIGenerated())
	assert.Equal(suite.T(), createdAt, r.CreatedAt())
	assert.Empty(suite.T(), r.Events(), "Reconstruct must not raise events")
}

func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}
