package types

import "github.com/pantrysnap/backend/internal/recommend"

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Name                string   `json:"name" binding:"required"`
	Email               string   `json:"email" binding:"required,email"`
	Password            string   `json:"password" binding:"required,min=8"`
	Username            string   `json:"username" binding:"required"`
	SkillLevel          string   `json:"skill_level"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RecipeIngredientInput names one ingredient on a recipe being created.
type RecipeIngredientInput struct {
	Name     string `json:"name" binding:"required"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// CreateRecipeRequest is the payload for recipe creation.
type CreateRecipeRequest struct {
	Title        string                  `json:"title" binding:"required"`
	Instructions string                  `json:"instructions" binding:"required"`
	PrepTimeMins int                     `json:"prep_time_mins"`
	CookTimeMins int                     `json:"cook_time_mins"`
	Difficulty   string                  `json:"difficulty"`
	Servings     int                     `json:"servings"`
	Ingredients  []RecipeIngredientInput `json:"ingredients" binding:"required"`
}

// RecommendRequest carries detections (typically from a previous scan
// response) back to the recommender.
type RecommendRequest struct {
	DetectedIngredients []recommend.Detection `json:"detected_ingredients" binding:"required"`
	ConfidenceThreshold *float64              `json:"confidence_threshold"`
}

// SearchByIngredientsRequest finds recipes cookable from the named
// ingredients. An empty list means "use my fridge".
type SearchByIngredientsRequest struct {
	Ingredients        []string `json:"ingredients"`
	MinMatchPercentage *float64 `json:"min_match_percentage"`
}

// AddAllergyRequest records one allergen for the authenticated user.
type AddAllergyRequest struct {
	AllergenName string `json:"allergen_name" binding:"required"`
	Severity     string `json:"severity"`
	Symptoms     string `json:"symptoms"`
}

// SaveLiveScanRequest persists detections from a live scan session.
type SaveLiveScanRequest struct {
	Ingredients []recommend.Detection `json:"ingredients" binding:"required"`
}

// UpdateScanSettingsRequest adjusts the scanner's confidence threshold.
type UpdateScanSettingsRequest struct {
	ConfidenceThreshold *float64 `json:"confidence_threshold"`
}
