package xerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage_PrefersCodeThenMessage(t *testing.T) {
	assert.Equal(t, "SLUG_TAKEN", UserMessage(APIError(409, "SLUG_TAKEN", "slug exists"), "Operation failed"))
	assert.Equal(t, "slug exists", UserMessage(APIError(409, "", "slug exists"), "Operation failed"))
	assert.Equal(t, "Operation failed", UserMessage(APIError(500, "", ""), "Operation failed"))
	assert.Equal(t, GenericFailure, UserMessage(errors.New("boom"), ""))
}

func TestKinds_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("list products: %w", AuthError(401, "TOKEN_EXPIRED", ""))
	assert.True(t, IsAuth(err))
	assert.Equal(t, KindAuth, KindOf(err))
	assert.True(t, errors.Is(err, ErrUnauthorized))

	v := ValidationError(map[string]string{"slug": "required"})
	assert.True(t, IsValidation(Wrap(v, "submit")))
	assert.True(t, errors.Is(v, ErrInvalidInput))

	assert.True(t, IsAuth(Wrap(ErrNoToken, "guard")))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestError_String(t *testing.T) {
	e := APIError(502, "UPSTREAM", "bad gateway")
	assert.Equal(t, "api (502) UPSTREAM: bad gateway", e.Error())

	n := NetworkError(errors.New("dial tcp: refused"))
	assert.Equal(t, "network: dial tcp: refused", n.Error())
}
