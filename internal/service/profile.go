package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrysnap/backend/internal/model"
)

// ErrProfileNotFound means the user has no profile row.
var ErrProfileNotFound = errors.New("profile not found")

// ErrAllergyNotFound means the allergy id does not belong to the user.
var ErrAllergyNotFound = errors.New("allergy not found")

// ProfileService reads and updates user preference data.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Get returns the profile for a user.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &profile, nil
}

// Update applies skill level and dietary restrictions. Empty skill level
// leaves the stored value unchanged.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, skillLevel string, dietary []string) (*model.UserProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if skillLevel != "" {
		profile.SkillLevel = skillLevel
	}
	if dietary != nil {
		profile.DietaryRestrictions = model.JSONBStringArray(dietary)
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return profile, nil
}

// ListAllergies returns the user's recorded allergens.
func (s *ProfileService) ListAllergies(ctx context.Context, userID uuid.UUID) ([]model.UserAllergy, error) {
	var allergies []model.UserAllergy
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("allergen_name").
		Find(&allergies).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return allergies, nil
}

// AddAllergy records an allergen. Severity defaults to mild. Recording the
// same allergen twice just returns the existing row.
func (s *ProfileService) AddAllergy(ctx context.Context, userID uuid.UUID, name, severity, symptoms string) (*model.UserAllergy, error) {
	var existing model.UserAllergy
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND allergen_name = ?", userID, name).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if severity == "" {
		severity = "mild"
	}
	allergy := model.UserAllergy{
		ID:           uuid.New(),
		UserID:       userID,
		AllergenName: name,
		Severity:     severity,
		Symptoms:     symptoms,
	}
	if err := s.db.WithContext(ctx).Create(&allergy).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &allergy, nil
}

// RemoveAllergy deletes one of the user's allergies by id.
func (s *ProfileService) RemoveAllergy(ctx context.Context, userID, allergyID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", allergyID, userID).
		Delete(&model.UserAllergy{})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAllergyNotFound
	}
	return nil
}
