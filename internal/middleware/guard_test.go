package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedSession string

func (f fixedSession) Token(context.Context) (string, bool) { return string(f), f != "" }

func guardedRouter(tok string) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	rendered := false
	r := gin.New()
	r.Use(RequestID(), RecoveryMiddleware(zap.NewNop()))
	g := r.Group("/console", NewAuthMiddleware(fixedSession(tok)).Guard())
	g.GET("/products", func(c *gin.Context) {
		rendered = true
		id, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"ok": true, "data": id})
	})
	return r, &rendered
}

func TestGuard_NoSessionRedirects(t *testing.T) {
	r, rendered := guardedRouter("")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/console/products?page=2", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fconsole%2Fproducts%3Fpage%3D2", w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), `"code":"AUTH_REQUIRED"`)
	assert.NotContains(t, w.Body.String(), `"items"`)
	assert.False(t, *rendered)
}

func TestGuard_PostRedirectsWithoutNext(t *testing.T) {
	r, _ := guardedRouter("")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/console/products", nil))
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestGuard_WithSessionRenders(t *testing.T) {
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub": "u1", "email": "admin@glam.test", "role": "ADMIN",
	}).SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	r, rendered := guardedRouter(tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/console/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *rendered)
	assert.Contains(t, w.Body.String(), "admin@glam.test")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGuard_OpaqueTokenStillPasses(t *testing.T) {
	r, rendered := guardedRouter("not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/console/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *rendered)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RecoveryMiddleware(zap.NewNop()))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-ID", "req-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), `"ok":false`)
}
