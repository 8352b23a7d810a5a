package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pantrysnap/backend/internal/ingredient"
	"github.com/pantrysnap/backend/internal/model"
)

// IngredientService resolves canonical names against the stored ingredient
// vocabulary. Lookup is exact match on canonicalized names; the fuzzy
// containment rule applies only during recipe matching.
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// Resolve maps a name (canonicalized first) to its stored ingredient.
// Returns ErrIngredientNotFound when the vocabulary has no such entry.
func (s *IngredientService) Resolve(ctx context.Context, name string) (*model.Ingredient, error) {
	canonical := ingredient.Normalize(name)
	if canonical == "" {
		return nil, ErrIngredientNotFound
	}

	var ing model.Ingredient
	err := s.db.WithContext(ctx).Where("name = ?", canonical).First(&ing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &ing, nil
}

// List returns the full ingredient vocabulary ordered by name.
func (s *IngredientService) List(ctx context.Context) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if err := s.db.WithContext(ctx).Order("name").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return ingredients, nil
}
