// internal/pkg/response/response.go
package response

import (
	"errors"
	"net/http"

	xerrors "glam-admin/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response is the console's envelope, the same shape the storefront API uses.
type Response struct {
	OK      bool              `json:"ok"`
	Message string            `json:"message,omitempty"`
	Code    string            `json:"code,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		OK:      true,
		Message: message,
		Data:    data,
	})
}

// Error sends a failure envelope and aborts the chain.
func Error(c *gin.Context, status int, code, message string, data ...interface{}) {
	c.Abort()

	resp := Response{
		OK:      false,
		Code:    code,
		Message: message,
	}
	if len(data) > 0 {
		resp.Data = data[0]
	}

	c.JSON(status, resp)
}

// FromError maps a console error onto an HTTP status and envelope.
func FromError(c *gin.Context, err error, fallback string) {
	status, code := StatusOf(err)
	resp := Response{OK: false, Code: code, Message: xerrors.UserMessage(err, fallback)}
	if e, ok := xerrors.As(err); ok && len(e.Fields) > 0 {
		resp.Fields = e.Fields
	}
	c.Abort()
	c.JSON(status, resp)
}

// StatusOf picks the console status for err.
func StatusOf(err error) (int, string) {
	switch {
	case errors.Is(err, xerrors.ErrBusy):
		return http.StatusConflict, "BUSY"
	case errors.Is(err, xerrors.ErrNoopStatus):
		return http.StatusConflict, "NOOP_STATUS"
	case errors.Is(err, xerrors.ErrInvalidStatus):
		return http.StatusUnprocessableEntity, "INVALID_STATUS"
	case errors.Is(err, xerrors.ErrNoPending):
		return http.StatusConflict, "NOTHING_PENDING"
	case errors.Is(err, xerrors.ErrNoDraft):
		return http.StatusConflict, "NO_DRAFT"
	case errors.Is(err, xerrors.ErrNotEditable):
		return http.StatusMethodNotAllowed, "NOT_EDITABLE"
	case errors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	}

	e, ok := xerrors.As(err)
	if !ok {
		return http.StatusInternalServerError, ""
	}
	switch e.Kind {
	case xerrors.KindValidation:
		return http.StatusUnprocessableEntity, "VALIDATION_FAILED"
	case xerrors.KindAuth:
		return http.StatusUnauthorized, firstNonEmpty(e.Code, "AUTH_REQUIRED")
	case xerrors.KindAPI:
		if e.Status >= 400 && e.Status < 500 {
			return e.Status, e.Code
		}
		return http.StatusBadGateway, e.Code
	default:
		return http.StatusBadGateway, e.Code
	}
}

// BadRequest sends a 400 for a malformed console request body.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", message)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
