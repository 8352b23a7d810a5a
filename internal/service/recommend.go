package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantrysnap/backend/internal/ingredient"
	"github.com/pantrysnap/backend/internal/model"
	"github.com/pantrysnap/backend/internal/recommend"
)

const poolCacheKey = "recommend:candidate_pool"

// RecommendationService turns detections into ranked recipe suggestions.
// The candidate pool is cached in Redis so repeated scans do not hammer
// the recipe table.
type RecommendationService struct {
	db       *gorm.DB
	redis    *redis.Client
	logger   *zap.Logger
	poolSize int
	cacheTTL time.Duration
}

func NewRecommendationService(db *gorm.DB, rdb *redis.Client, poolSize int, cacheTTL time.Duration, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{
		db:       db,
		redis:    rdb,
		logger:   logger,
		poolSize: poolSize,
		cacheTTL: cacheTTL,
	}
}

// Recommend runs the full pipeline for one request. threshold may be nil,
// in which case the default applies. A missing or broken profile falls
// back to beginner rather than failing the request.
func (s *RecommendationService) Recommend(ctx context.Context, userID uuid.UUID, detections []recommend.Detection, threshold *float64) (recommend.Result, error) {
	t := recommend.DefaultConfidenceThreshold
	if threshold != nil {
		t = *threshold
	}

	pool, err := s.candidatePool(ctx)
	if err != nil {
		return recommend.Result{}, err
	}

	skill := s.skillLevel(ctx, userID)
	return recommend.Rank(detections, t, pool, skill), nil
}

// SearchByIngredients finds recipes matchable from the given ingredient
// names, keeping those at or above the minimum match fraction. An empty
// name list falls back to the user's current fridge contents. Returns the
// matches and the cutoff actually applied.
func (s *RecommendationService) SearchByIngredients(ctx context.Context, userID uuid.UUID, names []string, minMatch *float64) ([]recommend.Match, float64, error) {
	cutoff := recommend.DefaultMinMatchPercentage
	if minMatch != nil {
		cutoff = *minMatch
	}

	if len(names) == 0 {
		fridge, err := s.fridgeNames(ctx, userID)
		if err != nil {
			return nil, 0, err
		}
		names = fridge
	}

	pool, err := s.candidatePool(ctx)
	if err != nil {
		return nil, 0, err
	}

	matches := recommend.MatchRecipes(recommend.CanonicalNames(names), pool)
	return recommend.FilterMatches(matches, cutoff), cutoff, nil
}

// fridgeNames returns the ingredient names of the user's latest scan. A
// user with no scans has an empty fridge, not an error.
func (s *RecommendationService) fridgeNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var scan model.FridgeScan
	err := s.db.WithContext(ctx).
		Preload("Detections.Ingredient").
		Where("user_id = ?", userID).
		Order("scanned_at desc").
		First(&scan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	names := make([]string, 0, len(scan.Detections))
	for _, d := range scan.Detections {
		names = append(names, d.Ingredient.Name)
	}
	return names, nil
}

// skillLevel reads the user's profile. Errors degrade to beginner; the
// recommendation must not fail because the profile row is missing.
func (s *RecommendationService) skillLevel(ctx context.Context, userID uuid.UUID) string {
	var profile model.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		s.logger.Debug("profile lookup failed, defaulting skill level",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return "beginner"
	}
	if profile.SkillLevel == "" {
		return "beginner"
	}
	return profile.SkillLevel
}

// candidatePool loads recipes with their ingredient names, serving from
// Redis when a fresh copy exists. Cache failures degrade to a direct read.
func (s *RecommendationService) candidatePool(ctx context.Context) ([]recommend.Candidate, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, poolCacheKey).Bytes()
		if err == nil {
			var pool []recommend.Candidate
			if err := json.Unmarshal(cached, &pool); err == nil {
				return pool, nil
			}
			s.logger.Warn("discarding unreadable candidate pool cache", zap.Error(err))
		} else if err != redis.Nil {
			s.logger.Warn("candidate pool cache read failed", zap.Error(err))
		}
	}

	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Order("created_at desc").
		Limit(s.poolSize).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	pool := make([]recommend.Candidate, 0, len(recipes))
	for _, r := range recipes {
		names := make([]string, 0, len(r.Ingredients))
		for _, ri := range r.Ingredients {
			names = append(names, ingredient.Normalize(ri.Ingredient.Name))
		}
		pool = append(pool, recommend.Candidate{Recipe: r, Ingredients: names})
	}

	if s.redis != nil {
		if data, err := json.Marshal(pool); err == nil {
			if err := s.redis.Set(ctx, poolCacheKey, data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("candidate pool cache write failed", zap.Error(err))
			}
		}
	}

	return pool, nil
}

// InvalidatePool drops the cached candidate pool. Called after recipe
// writes so new recipes become recommendable without waiting out the TTL.
func (s *RecommendationService) InvalidatePool(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, poolCacheKey).Err(); err != nil {
		s.logger.Warn("candidate pool invalidation failed", zap.Error(err))
	}
}
