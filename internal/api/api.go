package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantrysnap/backend/config"
	"github.com/pantrysnap/backend/internal/middleware"
	"github.com/pantrysnap/backend/internal/service"
)

// Deps are the shared collaborators the handlers are built from. Redis,
// storage and the rate limiter are optional; everything else is required.
type Deps struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Classifier service.Classifier
	Storage    *config.S3Config
	Config     *config.Config
	Logger     *zap.Logger
}

// SetupAPI constructs the service graph and mounts every route under
// /api/v1.
func SetupAPI(router *gin.Engine, deps Deps) {
	authService := service.NewAuthService(deps.DB, deps.Config.JWTSecret)
	profileService := service.NewProfileService(deps.DB)
	ingredientService := service.NewIngredientService(deps.DB)
	recipeService := service.NewRecipeService(deps.DB, ingredientService)
	recommendService := service.NewRecommendationService(
		deps.DB, deps.Redis, deps.Config.CandidatePoolSize, deps.Config.PoolCacheTTL, deps.Logger)
	scanService := service.NewScanService(
		deps.DB, deps.Classifier, ingredientService, deps.Storage,
		deps.Config.ConfidenceThreshold, deps.Logger)

	var scanRateLimit gin.HandlerFunc
	if deps.Redis != nil {
		limiter := middleware.NewScanRateLimiter(deps.Redis)
		scanRateLimit = limiter.RateLimitMiddleware()
	}

	v1 := router.Group("/api/v1")
	{
		NewHealthHandler(deps.DB, deps.Redis).RegisterRoutes(v1)
		NewAuthHandler(authService, profileService, deps.Logger).RegisterRoutes(v1)
		NewProfileHandler(profileService, authService, deps.Logger).RegisterRoutes(v1)
		NewIngredientHandler(ingredientService, deps.Logger).RegisterRoutes(v1)
		NewRecipeHandler(recipeService, recommendService, authService, deps.Logger).RegisterRoutes(v1)
		NewScanHandler(scanService, authService, scanRateLimit,
			deps.Config.MaxUploadSizeBytes, deps.Logger).RegisterRoutes(v1)
	}
}
