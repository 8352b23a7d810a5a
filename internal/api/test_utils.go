package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantrysnap/backend/config"
	"github.com/pantrysnap/backend/internal/model"
	"github.com/pantrysnap/backend/internal/recommend"
	"github.com/pantrysnap/backend/internal/service"
	"github.com/pantrysnap/backend/internal/testdb"
)

// stubClassifier returns canned detections or a canned error.
type stubClassifier struct {
	detections []recommend.Detection
	info       *service.ModelInfo
	err        error
}

func (s *stubClassifier) Predict(ctx context.Context, image []byte, filename string) ([]recommend.Detection, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.detections, nil
}

func (s *stubClassifier) Info(ctx context.Context) (*service.ModelInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

// testEnv is a fully wired API over an in-memory database with a stubbed
// classifier and no Redis or S3.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestEnv(t *testing.T, classifier service.Classifier) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.New(t)
	cfg := &config.Config{
		JWTSecret:           "test-secret",
		ConfidenceThreshold: recommend.DefaultConfidenceThreshold,
		MaxUploadSizeBytes:  10 * 1024 * 1024,
		CandidatePoolSize:   100,
		PoolCacheTTL:        time.Minute,
	}

	router := gin.New()
	SetupAPI(router, Deps{
		DB:         db,
		Classifier: classifier,
		Config:     cfg,
		Logger:     zap.NewNop(),
	})

	return &testEnv{router: router, db: db}
}

// doJSON performs a JSON request and returns the recorder plus the decoded
// body.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	decoded := map[string]interface{}{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

// doUpload performs a multipart image upload.
func (e *testEnv) doUpload(t *testing.T, path, token string, image []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "fridge.jpg")
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	decoded := map[string]interface{}{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

// registerUser creates a user through the API and returns its token.
func (e *testEnv) registerUser(t *testing.T, email, username, skill string) string {
	t.Helper()

	w, body := e.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":        "Test Cook",
		"email":       email,
		"password":    "password123",
		"username":    username,
		"skill_level": skill,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	token, ok := body["token"].(string)
	require.True(t, ok)
	return token
}

// seedIngredients inserts canonical ingredient rows directly.
func (e *testEnv) seedIngredients(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		ing := model.Ingredient{ID: uuid.New(), Name: name, Category: "test"}
		require.NoError(t, e.db.Create(&ing).Error)
	}
}
