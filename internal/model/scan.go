package model

import (
	"time"

	"github.com/google/uuid"
)

// FridgeScan records one classifier pass over an uploaded image.
type FridgeScan struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"scan_id"`
	UserID       uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ImageURL     string    `gorm:"size:512" json:"image_url"`
	AIConfidence float64   `json:"ai_confidence"`
	ScannedAt    time.Time `json:"scanned_at"`

	Detections []DetectedIngredient `gorm:"foreignKey:ScanID" json:"detections,omitempty"`
}

// DetectedIngredient links a scan to a resolved ingredient. Detections that
// never resolved against the vocabulary are not persisted; they still appear
// in the scan response.
type DetectedIngredient struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	ScanID       uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"scan_id"`
	IngredientID uuid.UUID  `gorm:"type:varchar(36);not null" json:"ingredient_id"`
	Confidence   float64    `json:"confidence"`
	Quantity     string     `gorm:"size:20;default:'unknown'" json:"quantity"`
	Freshness    string     `gorm:"size:20;default:'good'" json:"freshness"`
	CreatedAt    time.Time  `json:"created_at"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
}
