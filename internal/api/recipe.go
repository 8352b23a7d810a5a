package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrysnap/backend/internal/middleware"
	"github.com/pantrysnap/backend/internal/search"
	"github.com/pantrysnap/backend/internal/service"
	"github.com/pantrysnap/backend/internal/types"
)

// RecipeHandler serves recipe browsing, search, creation, favorites and
// the detection-driven recommendation endpoint.
type RecipeHandler struct {
	recipes     *service.RecipeService
	recommender *service.RecommendationService
	auth        *service.AuthService
	logger      *zap.Logger
}

func NewRecipeHandler(recipes *service.RecipeService, recommender *service.RecommendationService, auth *service.AuthService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		recommender: recommender,
		auth:        auth,
		logger:      logger,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.GET("/search", h.Search)
		recipes.POST("/search", middleware.AuthMiddleware(h.auth), h.SearchByIngredients)
		recipes.GET("/favorites", middleware.AuthMiddleware(h.auth), h.ListFavorites)
		recipes.GET("/:id", h.Get)
		recipes.POST("", middleware.AuthMiddleware(h.auth), h.Create)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.auth), h.Delete)
		recipes.POST("/recommend", middleware.AuthMiddleware(h.auth), h.Recommend)
		recipes.GET("/:id/favorite", middleware.AuthMiddleware(h.auth), h.CheckFavorite)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.auth), h.Favorite)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.auth), h.Unfavorite)
	}
}

func (h *RecipeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	recipes, total, err := h.recipes.List(c.Request.Context(), page, perPage)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "total": total})
}

// Search applies the paginated search engine over the stored recipes.
// Unknown sort keys fall back to title ascending; out-of-range paging
// values are clamped, never rejected.
func (h *RecipeHandler) Search(c *gin.Context) {
	maxTotalTime, _ := strconv.Atoi(c.Query("max_total_time"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	params := search.Params{
		Query:        c.Query("q"),
		Difficulty:   c.Query("difficulty"),
		MaxTotalTime: maxTotalTime,
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
		Page:         page,
		Limit:        limit,
	}

	result, err := h.recipes.Search(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes":    result.Recipes,
		"pagination": result.Pagination,
	})
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.respondError(c, err)
		return
	}

	h.recommender.InvalidatePool(c.Request.Context())
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, err)
		return
	}

	h.recommender.InvalidatePool(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

// Recommend ranks the stored recipes against detections the client got
// from a scan. Empty results carry a reason code and still return 200.
func (h *RecipeHandler) Recommend(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req types.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.recommender.Recommend(c.Request.Context(), userID, req.DetectedIngredients, req.ConfidenceThreshold)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := gin.H{
		"recommendations":      result.Recommendations,
		"detected_ingredients": result.Retained,
		"confidence_threshold": result.Threshold,
		"skill_level":          result.SkillLevel,
		"total_found":          result.TotalFound,
	}
	if result.Reason != "" {
		resp["reason"] = result.Reason
	}
	c.JSON(http.StatusOK, resp)
}

// SearchByIngredients finds recipes cookable from a supplied ingredient
// list, falling back to the caller's fridge contents when the list is
// empty.
func (h *RecipeHandler) SearchByIngredients(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req types.SearchByIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matches, cutoff, err := h.recommender.SearchByIngredients(c.Request.Context(), userID, req.Ingredients, req.MinMatchPercentage)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes":     matches,
		"total_found": len(matches),
		"search_criteria": gin.H{
			"ingredients":          req.Ingredients,
			"min_match_percentage": cutoff,
		},
	})
}

// CheckFavorite reports whether the caller has favorited the recipe.
func (h *RecipeHandler) CheckFavorite(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	favorited, err := h.recipes.IsFavorited(c.Request.Context(), userID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe_id":    id,
		"is_favorited": favorited,
	})
}

func (h *RecipeHandler) Favorite(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.AddFavorite(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe favorited"})
}

func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.RemoveFavorite(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	recipes, err := h.recipes.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
	case errors.Is(err, service.ErrStoreUnavailable):
		h.logger.Error("store unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage is unavailable"})
	default:
		h.logger.Error("recipe request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request failed"})
	}
}
