package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"glam-admin/internal/apiclient"
	xerrors "glam-admin/internal/pkg/errors"
	"glam-admin/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuth struct {
	token string
	err   error
	calls int
}

func (s *stubAuth) Login(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.token, s.err
}

func newRouter(a Authenticator) (*gin.Engine, *session.Manager) {
	gin.SetMode(gin.TestMode)
	m := session.NewManager(session.NewMemoryStore(), zap.NewNop())
	h := NewAuthHandler(a, m, zap.NewNop())
	r := gin.New()
	r.GET("/login", h.LoginView)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	return r, m
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type env struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) env {
	t.Helper()
	var e env
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestLogin_StoresToken(t *testing.T) {
	r, m := newRouter(&stubAuth{token: "tok-1"})

	w := post(r, "/login", `{"email":"ops@glam.test","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	tok, ok := m.Token(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "tok-1", tok)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
}

func TestLogin_BadInputNeverCallsAPI(t *testing.T) {
	a := &stubAuth{token: "tok-1"}
	r, _ := newRouter(a)

	w := post(r, "/login", `{"email":"not-an-email","password":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, a.calls)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"rejected credentials", xerrors.AuthError(http.StatusUnauthorized, "", "Invalid credentials"), http.StatusUnauthorized, "LOGIN_FAILED", "Invalid credentials"},
		{"code only", xerrors.AuthError(http.StatusForbidden, "ACCOUNT_LOCKED", ""), http.StatusUnauthorized, "ACCOUNT_LOCKED", "ACCOUNT_LOCKED"},
		{"no token", xerrors.APIError(http.StatusOK, "", "No token received"), http.StatusBadGateway, "", "No token received"},
		{"unreachable", xerrors.NetworkError(context.DeadlineExceeded), http.StatusBadGateway, "", apiclient.LoginFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, m := newRouter(&stubAuth{err: tt.err})

			w := post(r, "/login", `{"email":"ops@glam.test","password":"secret"}`)
			assert.Equal(t, tt.status, w.Code)
			e := decode(t, w)
			assert.False(t, e.OK)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.message, e.Message)
			assert.False(t, m.IsAuthenticated(context.Background()))
		})
	}
}

func TestLogout(t *testing.T) {
	r, m := newRouter(&stubAuth{token: "tok-1"})
	require.NoError(t, m.SetToken(context.Background(), "tok-1"))

	w := post(r, "/logout", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, m.IsAuthenticated(context.Background()))
}
