package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"recipe_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Instructions string         `gorm:"type:text" json:"instructions"`
	PrepTimeMins int            `json:"prep_time_mins"`
	CookTimeMins int            `json:"cook_time_mins"`
	Difficulty   string         `gorm:"size:20;default:'easy'" json:"difficulty"`
	Servings     int            `gorm:"default:4" json:"servings"`
	UserID       uuid.UUID      `gorm:"type:varchar(36)" json:"user_id"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

// RecipeIngredient joins a recipe to an ingredient with quantity data.
type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID     uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	IngredientID uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"ingredient_id"`
	Quantity     string     `gorm:"size:50" json:"quantity"`
	Unit         string     `gorm:"size:20" json:"unit"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
}
