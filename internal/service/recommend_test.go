package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantrysnap/backend/internal/model"
	"github.com/pantrysnap/backend/internal/recommend"
	"github.com/pantrysnap/backend/internal/testdb"
	"github.com/pantrysnap/backend/internal/types"
)

func seedRecipeWith(t *testing.T, db *gorm.DB, title, difficulty string, ingredients ...string) model.Recipe {
	t.Helper()
	svc := NewRecipeService(db, NewIngredientService(db))

	inputs := make([]types.RecipeIngredientInput, 0, len(ingredients))
	for _, name := range ingredients {
		var existing model.Ingredient
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			seedIngredient(t, db, name)
		}
		inputs = append(inputs, types.RecipeIngredientInput{Name: name})
	}

	recipe, err := svc.Create(context.Background(), uuid.New(), &types.CreateRecipeRequest{
		Title:        title,
		Instructions: "Cook.",
		Difficulty:   difficulty,
		Ingredients:  inputs,
	})
	require.NoError(t, err)
	return *recipe
}

func newRecommendationService(db *gorm.DB) *RecommendationService {
	return NewRecommendationService(db, nil, 100, time.Minute, zap.NewNop())
}

func TestRecommendationServiceRecommend(t *testing.T) {
	db := testdb.New(t)
	svc := newRecommendationService(db)
	ctx := context.Background()

	seedRecipeWith(t, db, "Tomato Omelette", "easy", "tomato", "egg")
	seedRecipeWith(t, db, "Beef Stew", "hard", "beef", "carrot")

	detections := []recommend.Detection{
		{Label: "tomato", Confidence: 0.9},
		{Label: "egg", Confidence: 0.8},
	}

	res, err := svc.Recommend(ctx, uuid.New(), detections, nil)
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "Tomato Omelette", res.Recommendations[0].Recipe.Title)
	assert.Equal(t, 1.0, res.Recommendations[0].MatchPercentage)
	// Unknown user profile defaults to beginner, so easy gets the 1.2 boost.
	assert.InDelta(t, 120.0, res.Recommendations[0].Score, 1e-9)
}

func TestRecommendationServiceUsesProfileSkill(t *testing.T) {
	db := testdb.New(t)
	svc := newRecommendationService(db)
	ctx := context.Background()

	userID := uuid.New()
	profile := model.UserProfile{
		ID:         uuid.New(),
		UserID:     userID,
		Username:   "pro-cook",
		SkillLevel: "advanced",
	}
	require.NoError(t, db.Create(&profile).Error)

	seedRecipeWith(t, db, "Tomato Omelette", "easy", "tomato", "egg")

	res, err := svc.Recommend(ctx, userID, []recommend.Detection{
		{Label: "tomato", Confidence: 0.9},
		{Label: "egg", Confidence: 0.8},
	}, nil)
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 1)
	// Advanced cooks get no easy-recipe boost.
	assert.InDelta(t, 100.0, res.Recommendations[0].Score, 1e-9)
}

func TestRecommendationServiceThresholdOverride(t *testing.T) {
	db := testdb.New(t)
	svc := newRecommendationService(db)
	ctx := context.Background()

	seedRecipeWith(t, db, "Tomato Soup", "easy", "tomato")

	threshold := 0.95
	res, err := svc.Recommend(ctx, uuid.New(), []recommend.Detection{
		{Label: "tomato", Confidence: 0.9},
	}, &threshold)
	require.NoError(t, err)

	// 0.95 clamps to 0.9, so the detection survives at exactly the bound.
	assert.Equal(t, 0.9, res.Threshold)
	require.Len(t, res.Recommendations, 1)
}

func TestRecommendationServiceEmptyOutcomes(t *testing.T) {
	db := testdb.New(t)
	svc := newRecommendationService(db)
	ctx := context.Background()

	t.Run("nothing above threshold", func(t *testing.T) {
		res, err := svc.Recommend(ctx, uuid.New(), []recommend.Detection{
			{Label: "tomato", Confidence: 0.1},
		}, nil)
		require.NoError(t, err)
		assert.Empty(t, res.Recommendations)
		assert.Equal(t, recommend.ReasonNoDetections, res.Reason)
	})

	t.Run("no matching recipes", func(t *testing.T) {
		res, err := svc.Recommend(ctx, uuid.New(), []recommend.Detection{
			{Label: "durian", Confidence: 0.9},
		}, nil)
		require.NoError(t, err)
		assert.Empty(t, res.Recommendations)
		assert.Equal(t, recommend.ReasonNoMatchingRecipes, res.Reason)
	})
}
