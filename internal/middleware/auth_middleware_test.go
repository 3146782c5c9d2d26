package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripmark/booking-backend/internal/models"
	"github.com/tripmark/booking-backend/pkg/jwt"
)

func newAuthRouter(t *testing.T, jwtService *jwt.Service, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(jwtService, logger)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userCtx := MustGetUserContext(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": userCtx.UserID,
			"role":    userCtx.Role,
		})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	code, _ := body["error"].(string)
	return code
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)

	t.Run("Valid Token Sets User Context", func(t *testing.T) {
		router := newAuthRouter(t, jwtService)
		userID := uuid.New()
		token, err := jwtService.GenerateToken(userID, string(models.RoleTraveler))
		require.NoError(t, err)

		recorder := doRequest(router, "Bearer "+token)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, string(models.RoleTraveler), body["role"])
	})

	t.Run("Missing Header", func(t *testing.T) {
		router := newAuthRouter(t, jwtService)

		recorder := doRequest(router, "")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "missing_auth_header", errorCode(t, recorder))
	})

	t.Run("Not Bearer", func(t *testing.T) {
		router := newAuthRouter(t, jwtService)

		recorder := doRequest(router, "Basic dXNlcjpwYXNz")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "invalid_auth_format", errorCode(t, recorder))
	})

	t.Run("Empty Token", func(t *testing.T) {
		router := newAuthRouter(t, jwtService)

		recorder := doRequest(router, "Bearer  ")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "invalid_auth_format", errorCode(t, recorder))
	})

	t.Run("Garbage Token", func(t *testing.T) {
		router := newAuthRouter(t, jwtService)

		recorder := doRequest(router, "Bearer not.a.jwt")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "invalid_token", errorCode(t, recorder))
	})

	t.Run("Expired Token", func(t *testing.T) {
		expiredService := jwt.NewService("test-secret", -time.Hour)
		token, err := expiredService.GenerateToken(uuid.New(), string(models.RoleTraveler))
		require.NoError(t, err)
		router := newAuthRouter(t, jwtService)

		recorder := doRequest(router, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "token_expired", errorCode(t, recorder))
	})

	t.Run("Wrong Signing Secret", func(t *testing.T) {
		otherService := jwt.NewService("other-secret", time.Hour)
		token, err := otherService.GenerateToken(uuid.New(), string(models.RoleTraveler))
		require.NoError(t, err)
		router := newAuthRouter(t, jwtService)

		recorder := doRequest(router, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "invalid_token", errorCode(t, recorder))
	})
}

func TestRequireRole(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)

	t.Run("Allows Matching Role", func(t *testing.T) {
		router := newAuthRouter(t, jwtService, RequireRole(models.RoleAdmin))
		token, err := jwtService.GenerateToken(uuid.New(), string(models.RoleAdmin))
		require.NoError(t, err)

		recorder := doRequest(router, "Bearer "+token)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Allows Any Of Several Roles", func(t *testing.T) {
		router := newAuthRouter(t, jwtService, RequireRole(models.RoleTravelAgent, models.RoleGuide))
		token, err := jwtService.GenerateToken(uuid.New(), string(models.RoleGuide))
		require.NoError(t, err)

		recorder := doRequest(router, "Bearer "+token)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Rejects Other Roles", func(t *testing.T) {
		router := newAuthRouter(t, jwtService, RequireRole(models.RoleAdmin))
		token, err := jwtService.GenerateToken(uuid.New(), string(models.RoleTraveler))
		require.NoError(t, err)

		recorder := doRequest(router, "Bearer "+token)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Equal(t, "insufficient_permissions", errorCode(t, recorder))
	})

	t.Run("Requires Auth Middleware First", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/protected", RequireRole(models.RoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		recorder := doRequest(router, "")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "missing_user_context", errorCode(t, recorder))
	})
}
