package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/inkwell/inkwell-backend/pkg/jwt"
)

func authTestRouter(mgr *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWTAuth(mgr), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	mgr := jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	router := authTestRouter(mgr)

	token, err := mgr.GenerateAccessToken("user-1", "alice", "user")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	mgr := jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	router := authTestRouter(mgr)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	mgr := jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	router := authTestRouter(mgr)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	mgr := jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	router := authTestRouter(mgr)

	token, err := mgr.GenerateRefreshToken("user-1")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	mgr := jwt.NewManager("test-secret", -time.Minute, 24*time.Hour)
	router := authTestRouter(mgr)

	token, err := mgr.GenerateAccessToken("user-1", "alice", "user")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}
