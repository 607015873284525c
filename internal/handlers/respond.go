// internal/handlers/respond.go
package handlers

import (
	"context"

	"glam-admin/internal/middleware"
	xerrors "glam-admin/internal/pkg/errors"
	"glam-admin/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionClearer ends the session.
type SessionClearer interface {
	ClearToken(ctx context.Context) error
}

// Fail writes err at the operation boundary. The API rejecting the token
// ends the session and sends the operator back to the login view.
func Fail(c *gin.Context, sessions SessionClearer, logger *zap.Logger, err error, fallback string) {
	if xerrors.IsAuth(err) {
		if cerr := sessions.ClearToken(c.Request.Context()); cerr != nil {
			logger.Error("failed to clear rejected session", zap.Error(cerr))
		}
		logger.Info("session rejected by api, redirecting to login", zap.Error(err))
		middleware.RedirectToLogin(c)
		return
	}
	response.FromError(c, err, fallback)
}

// IsSessionError reports whether err means the session is gone.
func IsSessionError(err error) bool {
	return xerrors.IsAuth(err)
}
