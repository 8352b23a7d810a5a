package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantrysnap/backend/config"
	"github.com/pantrysnap/backend/internal/model"
	"github.com/pantrysnap/backend/internal/recommend"
)

const maxHistoryLimit = 100

// ScanResult is the response for one scan, live or persisted. Detections
// include entries that did not resolve against the vocabulary; only the
// resolved ones are stored.
type ScanResult struct {
	ScanID     uuid.UUID             `json:"scan_id,omitempty"`
	ImageURL   string                `json:"image_url,omitempty"`
	Detections []recommend.Detection `json:"detections"`
	Threshold  float64               `json:"confidence_threshold"`
	ScannedAt  time.Time             `json:"scanned_at"`
}

// ScanService runs the classifier over uploaded images and records what it
// found. The confidence threshold is adjustable at runtime.
type ScanService struct {
	db          *gorm.DB
	classifier  Classifier
	ingredients *IngredientService
	storage     *config.S3Config
	logger      *zap.Logger

	mu        sync.RWMutex
	threshold float64
}

// NewScanService wires the scan pipeline. storage may be nil; scans then
// persist without an image URL.
func NewScanService(db *gorm.DB, classifier Classifier, ingredients *IngredientService, storage *config.S3Config, threshold float64, logger *zap.Logger) *ScanService {
	return &ScanService{
		db:          db,
		classifier:  classifier,
		ingredients: ingredients,
		storage:     storage,
		logger:      logger,
		threshold:   recommend.ClampThreshold(threshold),
	}
}

// Threshold returns the current confidence threshold.
func (s *ScanService) Threshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.threshold
}

// UpdateThreshold clamps and stores a new confidence threshold, returning
// the value actually applied.
func (s *ScanService) UpdateThreshold(t float64) float64 {
	clamped := recommend.ClampThreshold(t)
	s.mu.Lock()
	s.threshold = clamped
	s.mu.Unlock()
	return clamped
}

// Scan classifies an uploaded image, stores the scan and its resolved
// detections, and returns everything the classifier kept above threshold.
func (s *ScanService) Scan(ctx context.Context, userID uuid.UUID, image []byte, filename string) (*ScanResult, error) {
	detections, err := s.classifier.Predict(ctx, image, filename)
	if err != nil {
		return nil, err
	}

	threshold := s.Threshold()
	retained := recommend.FilterByConfidence(detections, threshold)

	imageURL := s.uploadImage(ctx, userID, image, filename)

	scan := model.FridgeScan{
		ID:           uuid.New(),
		UserID:       userID,
		ImageURL:     imageURL,
		AIConfidence: meanConfidence(retained),
		ScannedAt:    time.Now().UTC(),
	}

	if err := s.persistScan(ctx, &scan, retained); err != nil {
		return nil, err
	}

	return &ScanResult{
		ScanID:     scan.ID,
		ImageURL:   imageURL,
		Detections: retained,
		Threshold:  threshold,
		ScannedAt:  scan.ScannedAt,
	}, nil
}

// LiveScan classifies a frame without persisting anything. Used by the
// camera preview, which sends frames continuously.
func (s *ScanService) LiveScan(ctx context.Context, image []byte, filename string) (*ScanResult, error) {
	detections, err := s.classifier.Predict(ctx, image, filename)
	if err != nil {
		return nil, err
	}

	threshold := s.Threshold()
	return &ScanResult{
		Detections: recommend.FilterByConfidence(detections, threshold),
		Threshold:  threshold,
		ScannedAt:  time.Now().UTC(),
	}, nil
}

// SaveLiveScan persists detections a client accumulated during a live
// session. No image is stored.
func (s *ScanService) SaveLiveScan(ctx context.Context, userID uuid.UUID, detections []recommend.Detection) (*ScanResult, error) {
	threshold := s.Threshold()
	retained := recommend.FilterByConfidence(detections, threshold)

	scan := model.FridgeScan{
		ID:           uuid.New(),
		UserID:       userID,
		AIConfidence: meanConfidence(retained),
		ScannedAt:    time.Now().UTC(),
	}

	if err := s.persistScan(ctx, &scan, retained); err != nil {
		return nil, err
	}

	return &ScanResult{
		ScanID:     scan.ID,
		Detections: retained,
		Threshold:  threshold,
		ScannedAt:  scan.ScannedAt,
	}, nil
}

// History returns the user's most recent scans, newest first.
func (s *ScanService) History(ctx context.Context, userID uuid.UUID, limit int) ([]model.FridgeScan, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	var scans []model.FridgeScan
	err := s.db.WithContext(ctx).
		Preload("Detections.Ingredient").
		Where("user_id = ?", userID).
		Order("scanned_at desc").
		Limit(limit).
		Find(&scans).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return scans, nil
}

// FridgeContents returns the detections of the user's latest scan, which is
// the app's notion of "what is in the fridge right now".
func (s *ScanService) FridgeContents(ctx context.Context, userID uuid.UUID) ([]model.DetectedIngredient, error) {
	var scan model.FridgeScan
	err := s.db.WithContext(ctx).
		Preload("Detections.Ingredient").
		Where("user_id = ?", userID).
		Order("scanned_at desc").
		First(&scan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []model.DetectedIngredient{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return scan.Detections, nil
}

// ModelInfo proxies the classifier's model metadata.
func (s *ScanService) ModelInfo(ctx context.Context) (*ModelInfo, error) {
	return s.classifier.Info(ctx)
}

// uploadImage stores the scan image in S3. Failures are logged and leave
// the scan without an image URL; the scan itself still goes through.
func (s *ScanService) uploadImage(ctx context.Context, userID uuid.UUID, image []byte, filename string) string {
	if s.storage == nil {
		return ""
	}

	key := fmt.Sprintf("scans/%s/%s-%s", userID, uuid.New(), filename)
	_, err := s.storage.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.storage.BucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(image),
	})
	if err != nil {
		s.logger.Warn("scan image upload failed, continuing without image",
			zap.String("key", key),
			zap.Error(err))
		return ""
	}

	url, err := s.storage.GeneratePresignedURL(ctx, key, 24*time.Hour)
	if err != nil {
		s.logger.Warn("presigning scan image failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

// persistScan writes the scan row plus one row per detection that resolves
// against the ingredient vocabulary. Unresolved labels are logged and
// skipped; they still appear in the scan response.
func (s *ScanService) persistScan(ctx context.Context, scan *model.FridgeScan, detections []recommend.Detection) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(scan).Error; err != nil {
			return err
		}

		for _, d := range detections {
			ing, err := s.ingredients.Resolve(ctx, d.Label)
			if errors.Is(err, ErrIngredientNotFound) {
				s.logger.Info("detection did not resolve to a stored ingredient",
					zap.String("label", d.Label),
					zap.Float64("confidence", d.Confidence))
				continue
			}
			if err != nil {
				return err
			}

			row := model.DetectedIngredient{
				ID:           uuid.New(),
				ScanID:       scan.ID,
				IngredientID: ing.ID,
				Confidence:   d.Confidence,
				Quantity:     "unknown",
				Freshness:    "good",
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func meanConfidence(detections []recommend.Detection) float64 {
	if len(detections) == 0 {
		return 0
	}
	var sum float64
	for _, d := range detections {
		sum += d.Confidence
	}
	return sum / float64(len(detections))
}
