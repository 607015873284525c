package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_DecodesWithoutKey(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: "admin@glam.test",
		Role:  "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	claims, err := Inspect(signed)
	require.NoError(t, err)
	assert.Equal(t, "admin@glam.test", claims.Email)
	assert.True(t, claims.IsAdmin())

	id := claims.Identity()
	assert.Equal(t, "u-1", id.Subject)
	assert.Equal(t, []string{"ADMIN"}, id.Roles)
	require.NotNil(t, id.ExpiresAt)
	assert.True(t, exp.Equal(*id.ExpiresAt))
}

func TestInspect_Garbage(t *testing.T) {
	_, err := Inspect("not-a-jwt")
	assert.Error(t, err)
}
