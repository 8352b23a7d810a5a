package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrysnap/backend/internal/middleware"
	"github.com/pantrysnap/backend/internal/service"
	"github.com/pantrysnap/backend/internal/types"
)

// ScanHandler serves the scanning endpoints: uploads, live frames, history
// and scanner settings.
type ScanHandler struct {
	scans         *service.ScanService
	auth          *service.AuthService
	rateLimit     gin.HandlerFunc
	maxUploadSize int64
	logger        *zap.Logger
}

// NewScanHandler wires the scan endpoints. rateLimit may be nil when no
// Redis-backed limiter is configured.
func NewScanHandler(scans *service.ScanService, auth *service.AuthService, rateLimit gin.HandlerFunc, maxUploadSize int64, logger *zap.Logger) *ScanHandler {
	return &ScanHandler{
		scans:         scans,
		auth:          auth,
		rateLimit:     rateLimit,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

func (h *ScanHandler) RegisterRoutes(router *gin.RouterGroup) {
	scan := router.Group("/scan", middleware.AuthMiddleware(h.auth))
	if h.rateLimit != nil {
		scan.Use(h.rateLimit)
	}
	{
		scan.POST("", h.Scan)
		scan.POST("/live", h.LiveScan)
		scan.POST("/live/save", h.SaveLiveScan)
		scan.GET("/history", h.History)
		scan.GET("/fridge", h.FridgeContents)
		scan.GET("/model", h.ModelInfo)
		scan.GET("/settings", h.GetSettings)
		scan.PUT("/settings", h.UpdateSettings)
	}
}

// readImage extracts the uploaded image from the multipart form, enforcing
// the size limit.
func (h *ScanHandler) readImage(c *gin.Context) ([]byte, string, bool) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return nil, "", false
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return nil, "", false
	}
	if int64(len(data)) > h.maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return nil, "", false
	}

	return data, header.Filename, true
}

func (h *ScanHandler) Scan(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	image, filename, ok := h.readImage(c)
	if !ok {
		return
	}

	result, err := h.scans.Scan(c.Request.Context(), userID, image, filename)
	if err != nil {
		h.respondScanError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ScanHandler) LiveScan(c *gin.Context) {
	image, filename, ok := h.readImage(c)
	if !ok {
		return
	}

	result, err := h.scans.LiveScan(c.Request.Context(), image, filename)
	if err != nil {
		h.respondScanError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ScanHandler) SaveLiveScan(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req types.SaveLiveScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.scans.SaveLiveScan(c.Request.Context(), userID, req.Ingredients)
	if err != nil {
		h.respondScanError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *ScanHandler) History(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	scans, err := h.scans.History(c.Request.Context(), userID, limit)
	if err != nil {
		h.respondScanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scans": scans})
}

func (h *ScanHandler) FridgeContents(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	contents, err := h.scans.FridgeContents(c.Request.Context(), userID)
	if err != nil {
		h.respondScanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": contents})
}

func (h *ScanHandler) ModelInfo(c *gin.Context) {
	info, err := h.scans.ModelInfo(c.Request.Context())
	if err != nil {
		h.respondScanError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *ScanHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"confidence_threshold": h.scans.Threshold()})
}

func (h *ScanHandler) UpdateSettings(c *gin.Context) {
	var req types.UpdateScanSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ConfidenceThreshold == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confidence_threshold is required"})
		return
	}

	applied := h.scans.UpdateThreshold(*req.ConfidenceThreshold)
	c.JSON(http.StatusOK, gin.H{"confidence_threshold": applied})
}

func (h *ScanHandler) respondScanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassifierUnavailable):
		h.logger.Error("classifier unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ingredient classifier is unavailable"})
	case errors.Is(err, service.ErrStoreUnavailable):
		h.logger.Error("store unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage is unavailable"})
	default:
		h.logger.Error("scan request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scan failed"})
	}
}
