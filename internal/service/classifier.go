package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pantrysnap/backend/internal/recommend"
)

// ModelInfo describes the classifier's loaded model.
type ModelInfo struct {
	ModelLoaded         bool     `json:"model_loaded"`
	ModelPath           string   `json:"model_path"`
	ConfidenceThreshold float64  `json:"confidence_threshold"`
	SupportedClasses    int      `json:"supported_classes"`
	IngredientClasses   []string `json:"ingredient_classes"`
}

// Classifier is the boundary toward the external ingredient classifier. It
// consumes one still image and produces an ordered label/confidence list.
type Classifier interface {
	Predict(ctx context.Context, image []byte, filename string) ([]recommend.Detection, error)
	Info(ctx context.Context) (*ModelInfo, error)
}

// HTTPClassifier talks to the classifier inference service over HTTP.
type HTTPClassifier struct {
	client *resty.Client
	logger *zap.Logger
}

// NewHTTPClassifier creates a classifier client for the given base URL.
func NewHTTPClassifier(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClassifier {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &HTTPClassifier{
		client: client,
		logger: logger,
	}
}

type predictResponse struct {
	Predictions []recommend.Detection `json:"predictions"`
}

// Predict sends the image for inference. Transport failures and classifier
// 5xx responses surface as ErrClassifierUnavailable; they are never treated
// as an empty detection list.
func (c *HTTPClassifier) Predict(ctx context.Context, image []byte, filename string) ([]recommend.Detection, error) {
	var result predictResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("image", filename, bytes.NewReader(image)).
		SetResult(&result).
		Post("/predict")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		c.logger.Error("classifier returned non-OK status",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()))
		return nil, fmt.Errorf("%w: status %d", ErrClassifierUnavailable, resp.StatusCode())
	}

	return result.Predictions, nil
}

// Info fetches model metadata from the classifier service.
func (c *HTTPClassifier) Info(ctx context.Context) (*ModelInfo, error) {
	var info ModelInfo
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/info")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrClassifierUnavailable, resp.StatusCode())
	}
	return &info, nil
}
