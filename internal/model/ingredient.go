package model

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a row in the canonical ingredient vocabulary. Names are
// stored in canonical form (lower case, trimmed, no underscores).
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"ingredient_id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Category  string    `gorm:"size:50" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
