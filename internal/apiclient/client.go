// internal/apiclient/client.go
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	xerrors "glam-admin/internal/pkg/errors"
	"glam-admin/internal/pkg/session"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const maxResponseBytes = 8 << 20

// Client talks to the storefront REST API. It never retries: a failed call
// is reported and the operator re-triggers it.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  session.TokenSource
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens session.TokenSource, logger *zap.Logger) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout}, tokens, logger)
}

func NewClientWithHTTP(baseURL string, hc *http.Client, tokens session.TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		tokens:  tokens,
		logger:  logger,
	}
}

// Envelope is the response shape every endpoint uses.
type Envelope struct {
	OK      *bool           `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`

	raw json.RawMessage
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	noAuth bool
}

// do performs one call. The bearer token is read from the session at call
// time so a login or logout is reflected on the very next request.
func (c *Client) do(ctx context.Context, r request) (*Envelope, error) {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	reqID := ulid.Make().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !r.noAuth && c.tokens != nil {
		if tok, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return nil, xerrors.NetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, xerrors.NetworkError(fmt.Errorf("failed to read response: %w", err))
	}

	c.logger.Debug("api request",
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
		zap.Duration("latency", time.Since(start)),
	)

	env := &Envelope{raw: raw}
	if len(bytes.TrimSpace(raw)) > 0 {
		// Non-envelope bodies (a bare array, an HTML error page) are tolerated here.
		_ = json.Unmarshal(raw, env)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, xerrors.AuthError(resp.StatusCode, env.Code, env.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, xerrors.APIError(resp.StatusCode, env.Code, env.Message)
	}
	if env.OK != nil && !*env.OK {
		return nil, xerrors.APIError(resp.StatusCode, env.Code, env.Message)
	}
	return env, nil
}

// decodeData unmarshals the envelope's data member into out. Missing data is not an error.
func decodeData(env *Envelope, out any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return xerrors.APIError(0, "BAD_PAYLOAD", fmt.Sprintf("unexpected response payload: %v", err))
	}
	return nil
}

func pathID(prefix, id string) string {
	return prefix + "/" + url.PathEscape(id)
}
