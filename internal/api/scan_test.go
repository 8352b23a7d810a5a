package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrysnap/backend/internal/recommend"
	"github.com/pantrysnap/backend/internal/service"
)

func TestScanUpload(t *testing.T) {
	cl := &stubClassifier{detections: []recommend.Detection{
		{Label: "tomato", Confidence: 0.92},
		{Label: "onion", Confidence: 0.3},
	}}
	env := newTestEnv(t, cl)
	env.seedIngredients(t, "tomato", "onion")
	token := env.registerUser(t, "scan@example.com", "scanner", "beginner")

	w, body := env.doUpload(t, "/api/v1/scan", token, []byte("jpeg bytes"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	detections, ok := body["detections"].([]interface{})
	require.True(t, ok)
	// Low confidence onion is dropped.
	require.Len(t, detections, 1)
	first := detections[0].(map[string]interface{})
	assert.Equal(t, "tomato", first["name"])
	assert.NotEmpty(t, body["scan_id"])

	t.Run("appears in history", func(t *testing.T) {
		w, body := env.doJSON(t, http.MethodGet, "/api/v1/scan/history", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		scans := body["scans"].([]interface{})
		require.Len(t, scans, 1)
	})

	t.Run("requires auth", func(t *testing.T) {
		w, _ := env.doUpload(t, "/api/v1/scan", "", []byte("jpeg bytes"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("requires an image field", func(t *testing.T) {
		w, _ := env.doJSON(t, http.MethodPost, "/api/v1/scan", token, map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestScanClassifierDown(t *testing.T) {
	env := newTestEnv(t, &stubClassifier{err: service.ErrClassifierUnavailable})
	token := env.registerUser(t, "scan@example.com", "scanner", "beginner")

	w, body := env.doUpload(t, "/api/v1/scan", token, []byte("jpeg bytes"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, body["error"], "classifier")
}

func TestScanLive(t *testing.T) {
	cl := &stubClassifier{detections: []recommend.Detection{
		{Label: "carrot", Confidence: 0.8},
	}}
	env := newTestEnv(t, cl)
	env.seedIngredients(t, "carrot")
	token := env.registerUser(t, "live@example.com", "liver", "beginner")

	w, body := env.doUpload(t, "/api/v1/scan/live", token, []byte("frame"))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body["detections"], 1)

	// Live frames leave no history.
	w, body = env.doJSON(t, http.MethodGet, "/api/v1/scan/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["scans"])

	t.Run("save accumulated detections", func(t *testing.T) {
		w, _ := env.doJSON(t, http.MethodPost, "/api/v1/scan/live/save", token, map[string]interface{}{
			"ingredients": []map[string]interface{}{
				{"name": "carrot", "confidence": 0.8},
			},
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w, body := env.doJSON(t, http.MethodGet, "/api/v1/scan/fridge", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, body["ingredients"], 1)
	})
}

func TestScanSettings(t *testing.T) {
	env := newTestEnv(t, &stubClassifier{})
	token := env.registerUser(t, "settings@example.com", "tuner", "beginner")

	w, body := env.doJSON(t, http.MethodGet, "/api/v1/scan/settings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.5, body["confidence_threshold"])

	t.Run("update clamps out-of-range values", func(t *testing.T) {
		w, body := env.doJSON(t, http.MethodPut, "/api/v1/scan/settings", token, map[string]interface{}{
			"confidence_threshold": 1.5,
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0.9, body["confidence_threshold"])
	})

	t.Run("missing value rejected", func(t *testing.T) {
		w, _ := env.doJSON(t, http.MethodPut, "/api/v1/scan/settings", token, map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestScanModelInfo(t *testing.T) {
	env := newTestEnv(t, &stubClassifier{info: &service.ModelInfo{
		ModelLoaded:      true,
		SupportedClasses: 36,
	}})
	token := env.registerUser(t, "model@example.com", "modeler", "beginner")

	w, body := env.doJSON(t, http.MethodGet, "/api/v1/scan/model", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["model_loaded"])
	assert.Equal(t, float64(36), body["supported_classes"])
}
