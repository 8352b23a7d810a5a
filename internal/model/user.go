package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// UserProfile carries the preference data the recommender reads:
// skill level and dietary restrictions.
type UserProfile struct {
	ID                  uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID              uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Username            string           `gorm:"size:50;not null;uniqueIndex" json:"username"`
	SkillLevel          string           `gorm:"size:20;default:'beginner'" json:"skill_level"`
	DietaryRestrictions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_restrictions"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	DeletedAt           gorm.DeletedAt   `gorm:"index" json:"-"`
}

type UserAllergy struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	AllergenName string    `gorm:"size:50;not null" json:"allergen_name"`
	Severity     string    `gorm:"size:20;default:'mild'" json:"severity"`
	Symptoms     string    `gorm:"type:text" json:"symptoms"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
