package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrysnap/backend/internal/middleware"
	"github.com/pantrysnap/backend/internal/service"
	"github.com/pantrysnap/backend/internal/types"
)

// ProfileHandler serves read and update of the user's preference data.
type ProfileHandler struct {
	profiles *service.ProfileService
	auth     *service.AuthService
	logger   *zap.Logger
}

func NewProfileHandler(profiles *service.ProfileService, auth *service.AuthService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, auth: auth, logger: logger}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile", middleware.AuthMiddleware(h.auth))
	{
		profile.GET("", h.Get)
		profile.PUT("", h.Update)
	}

	allergies := router.Group("/allergies", middleware.AuthMiddleware(h.auth))
	{
		allergies.GET("", h.ListAllergies)
		allergies.POST("", h.AddAllergy)
		allergies.DELETE("/:id", h.RemoveAllergy)
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("profile read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

type updateProfileRequest struct {
	SkillLevel          string   `json:"skill_level"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), userID, req.SkillLevel, req.DietaryRestrictions)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("profile update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) ListAllergies(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	allergies, err := h.profiles.ListAllergies(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("allergy list failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage is unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"allergies": allergies})
}

func (h *ProfileHandler) AddAllergy(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req types.AddAllergyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allergy, err := h.profiles.AddAllergy(c.Request.Context(), userID, req.AllergenName, req.Severity, req.Symptoms)
	if err != nil {
		h.logger.Error("allergy add failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage is unavailable"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"allergy": allergy})
}

func (h *ProfileHandler) RemoveAllergy(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid allergy id"})
		return
	}

	if err := h.profiles.RemoveAllergy(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrAllergyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "allergy not found"})
			return
		}
		h.logger.Error("allergy remove failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage is unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "allergy removed"})
}
