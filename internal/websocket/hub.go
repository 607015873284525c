// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	"glam-admin/internal/apiclient"
	wstypes "glam-admin/internal/domain/websocket"
	"glam-admin/internal/domain/toast"
	"glam-admin/internal/pkg/session"

	"go.uber.org/zap"
)

// Hub fans console events out to every open console tab.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	// Registration/unregistration
	Register   chan *Client
	unregister chan *Client

	// Broadcasting
	broadcast chan *BroadcastMessage

	// Handler registry for modular message handling
	handlerRegistry *HandlerRegistry

	logger *zap.Logger
}

type BroadcastMessage struct {
	Channel wstypes.ChannelType
	Message *wstypes.WSMessage
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:         make(map[*Client]bool),
		Register:        make(chan *Client),
		unregister:      make(chan *Client, 16),
		broadcast:       make(chan *BroadcastMessage, 256),
		handlerRegistry: NewHandlerRegistry(),
		logger:          logger,
	}
}

func (h *Hub) RegisterHandler(handler MessageHandler) error {
	if err := h.handlerRegistry.Register(handler); err != nil {
		h.logger.Error("websocket handler not registered", zap.Error(err))
		return err
	}
	return nil
}

// HandleClientMessage processes a message from a client using registered handlers
func (h *Hub) HandleClientMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) (bool, error) {
	handler, exists := h.handlerRegistry.GetHandler(msg.Type)
	if !exists {
		return false, nil
	}
	return true, handler.HandleMessage(ctx, client, msg)
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.BroadcastMessage(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	for _, ch := range wstypes.DefaultChannels {
		client.Subscribe(ch)
	}

	h.logger.Info("console client connected",
		zap.String("client_id", client.id),
		zap.Int("total", len(h.clients)),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"client_id": client.id,
		"identity":  client.identity,
		"channels":  wstypes.DefaultChannels,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.Close()
		h.logger.Info("console client disconnected",
			zap.String("client_id", client.id),
			zap.Int("total", len(h.clients)),
		)
	}
}

func (h *Hub) BroadcastMessage(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client.IsSubscribed(msg.Channel) {
			client.SendMessage(msg.Message)
		}
	}
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// enqueue never blocks a screen operation on a slow hub.
func (h *Hub) enqueue(msg *BroadcastMessage) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast queue full, event dropped", zap.String("type", string(msg.Message.Type)))
	}
}

// Notify delivers a toast to every console tab.
func (h *Hub) Notify(t toast.Toast) {
	h.enqueue(&BroadcastMessage{
		Channel: wstypes.ChannelToasts,
		Message: wstypes.NewMessage(wstypes.EventTypeToast, t),
	})
}

// WatchCache forwards list invalidations so open tabs re-fetch.
func (h *Hub) WatchCache(cache *apiclient.ListCache, tags ...apiclient.Tag) (stop func()) {
	stops := make([]func(), 0, len(tags))
	for _, tag := range tags {
		stops = append(stops, cache.Subscribe(tag, func(t apiclient.Tag) {
			h.enqueue(&BroadcastMessage{
				Channel: wstypes.ChannelInvalidations,
				Message: wstypes.NewMessage(wstypes.EventTypeInvalidated, wstypes.InvalidationData{Resource: string(t)}),
			})
		}))
	}
	return func() {
		for _, s := range stops {
			s()
		}
	}
}

// OnSessionChange tells every tab to go back to the login view once the
// session ends.
func (h *Hub) OnSessionChange(state session.State) {
	if state != session.StateAnonymous {
		return
	}
	h.ForceLogout("session_ended")
}

func (h *Hub) ForceLogout(reason string) {
	h.enqueue(&BroadcastMessage{
		Channel: wstypes.ChannelSession,
		Message: wstypes.NewMessage(wstypes.EventTypeForceLogout, wstypes.SessionEventData{
			Reason:   reason,
			Message:  "You have been logged out",
			Redirect: "/login",
		}),
	})
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
