package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	xerrors "glam-admin/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"busy", xerrors.ErrBusy, http.StatusConflict, "BUSY"},
		{"noop", xerrors.ErrNoopStatus, http.StatusConflict, "NOOP_STATUS"},
		{"validation", xerrors.ValidationError(map[string]string{"name": "x"}), http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"auth", xerrors.AuthError(401, "", ""), http.StatusUnauthorized, "AUTH_REQUIRED"},
		{"api 4xx", xerrors.APIError(409, "SLUG_TAKEN", ""), http.StatusConflict, "SLUG_TAKEN"},
		{"api 5xx", xerrors.APIError(500, "", "boom"), http.StatusBadGateway, ""},
		{"network", xerrors.NetworkError(errors.New("refused")), http.StatusBadGateway, ""},
		{"plain", errors.New("x"), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := StatusOf(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestFromError_CarriesFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, xerrors.ValidationError(map[string]string{"slug": "This field is required."}), "")

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.OK)
	assert.Equal(t, "Please fix the highlighted fields", body.Message)
	assert.Equal(t, "This field is required.", body.Fields["slug"])
	assert.True(t, c.IsAborted())
}
