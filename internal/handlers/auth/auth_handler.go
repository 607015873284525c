// internal/handlers/auth/auth_handler.go
package auth

import (
	"context"
	"net/http"

	"glam-admin/internal/apiclient"
	"glam-admin/internal/middleware"
	xerrors "glam-admin/internal/pkg/errors"
	"glam-admin/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Sessions is the session store the handler writes.
type Sessions interface {
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	auth     Authenticator
	sessions Sessions
	logger   *zap.Logger
}

func NewAuthHandler(auth Authenticator, sessions Sessions, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		logger:   logger,
	}
}

// LoginView reports whether a session exists so the login view can skip itself.
func (h *AuthHandler) LoginView(c *gin.Context) {
	response.Success(c, http.StatusOK, "", gin.H{
		"authenticated": h.sessions.IsAuthenticated(c.Request.Context()),
	})
}

// Login exchanges credentials once. There is no retry and no refresh.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("login failed",
			zap.String("email", req.Email),
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		status, code := response.StatusOf(err)
		if xerrors.IsAuth(err) {
			code = "LOGIN_FAILED"
			if e, ok := xerrors.As(err); ok && e.Code != "" {
				code = e.Code
			}
		}
		response.Error(c, status, code, apiclient.LoginMessage(err))
		return
	}

	if err := h.sessions.SetToken(c.Request.Context(), token); err != nil {
		h.logger.Error("failed to store session", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "SESSION_STORE", "Could not save session")
		return
	}

	h.logger.Info("operator logged in", zap.String("email", req.Email))
	response.Success(c, http.StatusOK, "login successful", gin.H{"authenticated": true})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.ClearToken(c.Request.Context()); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "SESSION_STORE", "logout failed")
		return
	}
	response.Success(c, http.StatusOK, "logout successful", gin.H{"authenticated": false})
}

// Me returns the unverified token claims for display.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Success(c, http.StatusOK, "", gin.H{"authenticated": true})
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"authenticated": true, "identity": identity})
}
