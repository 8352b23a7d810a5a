package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t, &stubClassifier{})

	w, body := env.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Jamie Cook",
		"email":    "jamie@example.com",
		"password": "password123",
		"username": "jamie",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, body["token"])

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w, _ := env.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
			"name":     "Jamie Cook",
			"email":    "jamie@example.com",
			"password": "password123",
			"username": "jamie2",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("login works", func(t *testing.T) {
		w, body := env.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
			"email":    "jamie@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		w, _ := env.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
			"email":    "jamie@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid payload rejected", func(t *testing.T) {
		w, _ := env.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
			"email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthMe(t *testing.T) {
	env := newTestEnv(t, &stubClassifier{})
	token := env.registerUser(t, "sam@example.com", "sam", "intermediate")

	w, body := env.doJSON(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	profile, ok := body["profile"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "sam", profile["username"])
	assert.Equal(t, "intermediate", profile["skill_level"])

	t.Run("requires token", func(t *testing.T) {
		w, _ := env.doJSON(t, http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		w, _ := env.doJSON(t, http.MethodGet, "/api/v1/auth/me", "not.a.token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProfileUpdate(t *testing.T) {
	env := newTestEnv(t, &stubClassifier{})
	token := env.registerUser(t, "sam@example.com", "sam", "beginner")

	w, body := env.doJSON(t, http.MethodPut, "/api/v1/profile", token, map[string]interface{}{
		"skill_level":          "advanced",
		"dietary_restrictions": []string{"vegan"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	profile, ok := body["profile"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "advanced", profile["skill_level"])

	w, body = env.doJSON(t, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile = body["profile"].(map[string]interface{})
	assert.Equal(t, "advanced", profile["skill_level"])
	assert.Equal(t, []interface{}{"vegan"}, profile["dietary_restrictions"])
}

func TestAllergiesEndpoints(t *testing.T) {
	env := newTestEnv(t, &stubClassifier{})
	token := env.registerUser(t, "allergic@example.com", "allergic", "beginner")

	w, body := env.doJSON(t, http.MethodGet, "/api/v1/allergies", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["allergies"])

	w, body = env.doJSON(t, http.MethodPost, "/api/v1/allergies", token, map[string]interface{}{
		"allergen_name": "peanut",
		"severity":      "severe",
		"symptoms":      "swelling",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	allergy := body["allergy"].(map[string]interface{})
	assert.Equal(t, "peanut", allergy["allergen_name"])
	assert.Equal(t, "severe", allergy["severity"])
	allergyID := allergy["id"].(string)

	t.Run("severity defaults to mild", func(t *testing.T) {
		w, body := env.doJSON(t, http.MethodPost, "/api/v1/allergies", token, map[string]interface{}{
			"allergen_name": "shellfish",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "mild", body["allergy"].(map[string]interface{})["severity"])
	})

	t.Run("duplicate allergen keeps the existing row", func(t *testing.T) {
		w, body := env.doJSON(t, http.MethodPost, "/api/v1/allergies", token, map[string]interface{}{
			"allergen_name": "peanut",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, allergyID, body["allergy"].(map[string]interface{})["id"])

		w, body = env.doJSON(t, http.MethodGet, "/api/v1/allergies", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body["allergies"], 2)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		w, _ := env.doJSON(t, http.MethodPost, "/api/v1/allergies", token, map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("remove", func(t *testing.T) {
		w, _ := env.doJSON(t, http.MethodDelete, "/api/v1/allergies/"+allergyID, token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w, body := env.doJSON(t, http.MethodGet, "/api/v1/allergies", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body["allergies"], 1)
	})

	t.Run("removing a missing allergy is 404", func(t *testing.T) {
		w, _ := env.doJSON(t, http.MethodDelete, "/api/v1/allergies/00000000-0000-0000-0000-000000000000", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("requires auth", func(t *testing.T) {
		w, _ := env.doJSON(t, http.MethodGet, "/api/v1/allergies", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
