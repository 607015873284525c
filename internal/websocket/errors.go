// internal/websocket/errors.go
package websocket

import "errors"

var (
	ErrUnknownResource  = errors.New("unknown resource")
	ErrEventTaken       = errors.New("event already has a handler")
	ErrNoEventsDeclared = errors.New("handler declares no events")
)
