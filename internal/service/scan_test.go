package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pantrysnap/backend/internal/recommend"
	"github.com/pantrysnap/backend/internal/testdb"
)

// fakeClassifier returns canned detections or a canned error.
type fakeClassifier struct {
	detections []recommend.Detection
	info       *ModelInfo
	err        error
}

func (f *fakeClassifier) Predict(ctx context.Context, image []byte, filename string) ([]recommend.Detection, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.detections, nil
}

func (f *fakeClassifier) Info(ctx context.Context) (*ModelInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func newScanService(t *testing.T, cl Classifier) (*ScanService, *IngredientService) {
	t.Helper()
	db := testdb.New(t)
	ingredients := NewIngredientService(db)
	svc := NewScanService(db, cl, ingredients, nil, recommend.DefaultConfidenceThreshold, zap.NewNop())
	seedIngredient(t, db, "tomato")
	seedIngredient(t, db, "egg")
	return svc, ingredients
}

func TestScanServiceScan(t *testing.T) {
	cl := &fakeClassifier{detections: []recommend.Detection{
		{Label: "tomato", Confidence: 0.92},
		{Label: "egg", Confidence: 0.74},
		{Label: "mystery herb", Confidence: 0.81},
		{Label: "onion", Confidence: 0.2},
	}}
	svc, _ := newScanService(t, cl)
	ctx := context.Background()
	userID := uuid.New()

	res, err := svc.Scan(ctx, userID, []byte("jpeg bytes"), "fridge.jpg")
	require.NoError(t, err)

	// The low-confidence onion is filtered; the unresolvable herb stays in
	// the response but is not persisted.
	require.Len(t, res.Detections, 3)
	assert.Equal(t, "mystery herb", res.Detections[2].Label)
	assert.NotEqual(t, uuid.Nil, res.ScanID)

	history, err := svc.History(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Len(t, history[0].Detections, 2)
	names := []string{
		history[0].Detections[0].Ingredient.Name,
		history[0].Detections[1].Ingredient.Name,
	}
	assert.ElementsMatch(t, []string{"tomato", "egg"}, names)
	assert.Equal(t, "unknown", history[0].Detections[0].Quantity)
	assert.Equal(t, "good", history[0].Detections[0].Freshness)
}

func TestScanServiceClassifierFailure(t *testing.T) {
	svc, _ := newScanService(t, &fakeClassifier{err: ErrClassifierUnavailable})

	_, err := svc.Scan(context.Background(), uuid.New(), []byte("x"), "a.jpg")
	assert.ErrorIs(t, err, ErrClassifierUnavailable)

	// Nothing was persisted for the failed scan.
	history, err := svc.History(context.Background(), uuid.New(), 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestScanServiceLiveScan(t *testing.T) {
	cl := &fakeClassifier{detections: []recommend.Detection{
		{Label: "tomato", Confidence: 0.9},
	}}
	svc, _ := newScanService(t, cl)
	ctx := context.Background()
	userID := uuid.New()

	res, err := svc.LiveScan(ctx, []byte("frame"), "frame.jpg")
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, res.ScanID)
	require.Len(t, res.Detections, 1)

	// Live scans leave no trace.
	history, err := svc.History(ctx, userID, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestScanServiceSaveLiveScan(t *testing.T) {
	svc, _ := newScanService(t, &fakeClassifier{})
	ctx := context.Background()
	userID := uuid.New()

	res, err := svc.SaveLiveScan(ctx, userID, []recommend.Detection{
		{Label: "tomato", Confidence: 0.9},
		{Label: "egg", Confidence: 0.3},
	})
	require.NoError(t, err)
	require.Len(t, res.Detections, 1)

	history, err := svc.History(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Empty(t, history[0].ImageURL)
}

func TestScanServiceThreshold(t *testing.T) {
	svc, _ := newScanService(t, &fakeClassifier{})

	assert.Equal(t, 0.5, svc.Threshold())
	assert.Equal(t, 0.7, svc.UpdateThreshold(0.7))
	assert.Equal(t, 0.7, svc.Threshold())

	// Out-of-range values clamp instead of erroring.
	assert.Equal(t, 0.9, svc.UpdateThreshold(1.5))
	assert.Equal(t, 0.1, svc.UpdateThreshold(-3))
}

func TestScanServiceFridgeContents(t *testing.T) {
	svc, _ := newScanService(t, &fakeClassifier{})
	ctx := context.Background()
	userID := uuid.New()

	contents, err := svc.FridgeContents(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, contents)

	_, err = svc.SaveLiveScan(ctx, userID, []recommend.Detection{
		{Label: "tomato", Confidence: 0.9},
	})
	require.NoError(t, err)
	_, err = svc.SaveLiveScan(ctx, userID, []recommend.Detection{
		{Label: "egg", Confidence: 0.8},
		{Label: "tomato", Confidence: 0.7},
	})
	require.NoError(t, err)

	// Only the latest scan counts as the fridge.
	contents, err = svc.FridgeContents(ctx, userID)
	require.NoError(t, err)
	require.Len(t, contents, 2)
}
