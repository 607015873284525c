// internal/pkg/session/types.go
package session

import "context"

// State of the console session.
type State string

const (
	StateAnonymous     State = "ANONYMOUS"
	StateAuthenticated State = "AUTHENTICATED"
)

// Store persists the bearer token under a single well-known key.
// Load returns "" and no error when nothing is stored.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// TokenSource is what outgoing API calls need from the session.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}
