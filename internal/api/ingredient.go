package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrysnap/backend/internal/service"
)

// IngredientHandler serves the ingredient vocabulary.
type IngredientHandler struct {
	ingredients *service.IngredientService
	logger      *zap.Logger
}

func NewIngredientHandler(ingredients *service.IngredientService, logger *zap.Logger) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients, logger: logger}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ingredients", h.List)
}

func (h *IngredientHandler) List(c *gin.Context) {
	list, err := h.ingredients.List(c.Request.Context())
	if err != nil {
		h.logger.Error("ingredient list failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage is unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": list})
}
