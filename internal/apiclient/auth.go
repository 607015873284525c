package apiclient

import (
	"context"
	"net/http"
	"strings"

	xerrors "glam-admin/internal/pkg/errors"
)

// LoginFailure is shown when a failed login carries no message or code.
const LoginFailure = "Invalid email or password"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	AccessToken string `json:"accessToken"`
}

type AuthAPI struct {
	c *Client
}

func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{c: c}
}

// Login exchanges credentials for a bearer token. It is the only call made
// without the Authorization header.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	env, err := a.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   LoginRequest{Email: strings.TrimSpace(email), Password: password},
		noAuth: true,
	})
	if err != nil {
		return "", err
	}

	var data loginData
	if err := decodeData(env, &data); err != nil {
		return "", err
	}
	if strings.TrimSpace(data.AccessToken) == "" {
		return "", xerrors.APIError(http.StatusOK, "", "No token received")
	}
	return data.AccessToken, nil
}

// LoginMessage prefers the server message over the code for the login form.
func LoginMessage(err error) string {
	if e, ok := xerrors.As(err); ok {
		switch {
		case e.Message != "":
			return e.Message
		case e.Code != "":
			return e.Code
		}
	}
	return LoginFailure
}
