// internal/websocket/handler/refresh.go
package handler

import (
	"context"
	"fmt"

	wstypes "glam-admin/internal/domain/websocket"
	ws "glam-admin/internal/websocket"
)

// Refresher re-fetches one screen's list.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshHandler lets a console tab ask for a fresh list, typically after it
// received a cache:invalidated event.
type RefreshHandler struct {
	screens map[string]Refresher
}

func NewRefreshHandler(screens map[string]Refresher) *RefreshHandler {
	return &RefreshHandler{screens: screens}
}

// SupportedEvents returns events this handler supports
func (h *RefreshHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{wstypes.EventTypeRefresh}
}

func (h *RefreshHandler) HandleMessage(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	var req wstypes.RefreshRequest
	if err := ws.DecodeData(msg, &req); err != nil {
		return fmt.Errorf("invalid refresh request: %w", err)
	}

	s, ok := h.screens[req.Resource]
	if !ok {
		return fmt.Errorf("%w: %q", ws.ErrUnknownResource, req.Resource)
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeRefresh, map[string]interface{}{
		"resource": req.Resource,
		"status":   "refreshed",
	}))
	return nil
}
