package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formaplace/formaplace-backend/internal/config"
	"github.com/formaplace/formaplace-backend/internal/repository"
	"github.com/formaplace/formaplace-backend/internal/response"
	"github.com/formaplace/formaplace-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAuth() *service.AuthService {
	return service.NewAuthService(&config.Config{
		JWTSecret:       "test-secret",
		BcryptCost:      4,
		AdminTokenTTL:   time.Hour,
		StaffTokenTTL:   time.Hour,
		LearnerTokenTTL: time.Hour,
	})
}

func allExist(context.Context, int) error { return nil }

func gateRequest(t *testing.T, gate gin.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.GET("/protected", gate, func(c *gin.Context) {
		claims := GetClaims(c)
		require.NotNil(t, claims)
		response.Success(c, http.StatusOK, gin.H{"user_id": claims.UserID})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestGateMissingToken(t *testing.T) {
	gate := RequireRole(testAuth(), allExist, service.RoleLearner)

	w := gateRequest(t, gate, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REQUIRED", errCode(t, w))
}

func TestGateMalformedHeader(t *testing.T) {
	gate := RequireRole(testAuth(), allExist, service.RoleLearner)

	w := gateRequest(t, gate, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REQUIRED", errCode(t, w))
}

func TestGateInvalidToken(t *testing.T) {
	gate := RequireRole(testAuth(), allExist, service.RoleLearner)

	w := gateRequest(t, gate, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_INVALID", errCode(t, w))
}

func TestGateRoleMismatch(t *testing.T) {
	auth := testAuth()
	gate := RequireRole(auth, allExist, service.RoleAdmin)

	token, err := auth.GenerateToken(service.RoleLearner, 1)
	require.NoError(t, err)

	w := gateRequest(t, gate, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errCode(t, w))
}

func TestGateDeletedActor(t *testing.T) {
	auth := testAuth()
	gone := func(context.Context, int) error { return repository.ErrNotFound }
	gate := RequireRole(auth, gone, service.RoleTrainer)

	token, err := auth.GenerateToken(service.RoleTrainer, 5)
	require.NoError(t, err)

	w := gateRequest(t, gate, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ACCOUNT_GONE", errCode(t, w))
}

func TestGateResolverError(t *testing.T) {
	auth := testAuth()
	broken := func(context.Context, int) error { return errors.New("db down") }
	gate := RequireRole(auth, broken, service.RoleTrainer)

	token, err := auth.GenerateToken(service.RoleTrainer, 5)
	require.NoError(t, err)

	w := gateRequest(t, gate, "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGatePassesValidActor(t *testing.T) {
	auth := testAuth()
	gate := RequireRole(auth, allExist, service.RoleExpert)

	token, err := auth.GenerateToken(service.RoleExpert, 9)
	require.NoError(t, err)

	w := gateRequest(t, gate, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			UserID int `json:"user_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 9, body.Data.UserID)
}
