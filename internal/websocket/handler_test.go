package websocket

import (
	"context"
	"testing"

	wstypes "glam-admin/internal/domain/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventsHandler []wstypes.EventType

func (e eventsHandler) SupportedEvents() []wstypes.EventType { return e }

func (eventsHandler) HandleMessage(context.Context, *Client, *wstypes.WSMessage) error { return nil }

func TestHandlerRegistry(t *testing.T) {
	r := NewHandlerRegistry()

	require.NoError(t, r.Register(eventsHandler{wstypes.EventTypeRefresh}))
	_, ok := r.GetHandler(wstypes.EventTypeRefresh)
	assert.True(t, ok)

	err := r.Register(eventsHandler{wstypes.EventTypePing, wstypes.EventTypeRefresh})
	assert.ErrorIs(t, err, ErrEventTaken)
	_, ok = r.GetHandler(wstypes.EventTypePing)
	assert.False(t, ok, "a rejected handler claims no events")

	assert.ErrorIs(t, r.Register(eventsHandler{}), ErrNoEventsDeclared)
	assert.Equal(t, []wstypes.EventType{wstypes.EventTypeRefresh}, r.Events())
}
