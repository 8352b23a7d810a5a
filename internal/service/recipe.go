package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrysnap/backend/internal/model"
	"github.com/pantrysnap/backend/internal/search"
	"github.com/pantrysnap/backend/internal/types"
)

const maxRecipesPerPage = 50

// RecipeService owns recipe CRUD, search and favorites.
type RecipeService struct {
	db          *gorm.DB
	ingredients *IngredientService
}

func NewRecipeService(db *gorm.DB, ingredients *IngredientService) *RecipeService {
	return &RecipeService{db: db, ingredients: ingredients}
}

// List returns one page of recipes, newest first.
func (s *RecipeService) List(ctx context.Context, page, perPage int) ([]model.Recipe, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > maxRecipesPerPage {
		perPage = maxRecipesPerPage
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Order("created_at desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return recipes, total, nil
}

// Get returns one recipe with its ingredients.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &recipe, nil
}

// Create stores a recipe. Every ingredient must already exist in the
// vocabulary; an unknown name fails the whole creation.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*model.Recipe, error) {
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "easy"
	}
	servings := req.Servings
	if servings < 1 {
		servings = 4
	}

	recipe := model.Recipe{
		ID:           uuid.New(),
		Title:        req.Title,
		Instructions: req.Instructions,
		PrepTimeMins: req.PrepTimeMins,
		CookTimeMins: req.CookTimeMins,
		Difficulty:   difficulty,
		Servings:     servings,
		UserID:       userID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		for _, input := range req.Ingredients {
			ing, err := s.ingredients.Resolve(ctx, input.Name)
			if err != nil {
				if errors.Is(err, ErrIngredientNotFound) {
					return fmt.Errorf("%w: %q", ErrIngredientNotFound, input.Name)
				}
				return err
			}

			row := model.RecipeIngredient{
				ID:           uuid.New(),
				RecipeID:     recipe.ID,
				IngredientID: ing.ID,
				Quantity:     input.Quantity,
				Unit:         input.Unit,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID)
}

// Delete removes a recipe owned by the caller.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, userID).
		Delete(&model.Recipe{})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// Search loads the recipe pool and applies the in-memory search engine.
func (s *RecipeService) Search(ctx context.Context, p search.Params) (search.Result, error) {
	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Find(&recipes).Error
	if err != nil {
		return search.Result{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return search.Run(recipes, p), nil
}

// AddFavorite marks a recipe as a favorite. Favoriting twice is a no-op.
func (s *RecipeService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.Get(ctx, recipeID); err != nil {
		return err
	}

	var existing model.RecipeFavorite
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	fav := model.RecipeFavorite{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := s.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// RemoveFavorite deletes a favorite if present.
func (s *RecipeService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.RecipeFavorite{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// IsFavorited reports whether the user has favorited the recipe.
func (s *RecipeService) IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.RecipeFavorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return count > 0, nil
}

// ListFavorites returns the user's favorited recipes, most recent first.
func (s *RecipeService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	var favorites []model.RecipeFavorite
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	recipes := make([]model.Recipe, 0, len(favorites))
	for _, fav := range favorites {
		recipe, err := s.Get(ctx, fav.RecipeID)
		if errors.Is(err, ErrRecipeNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}
