// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing         EventType = "ping"
	EventTypePong         EventType = "pong"
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeError        EventType = "error"

	// Console events (server -> client)
	EventTypeToast       EventType = "toast"
	EventTypeInvalidated EventType = "list:invalidated"
	EventTypeForceLogout EventType = "session:force_logout"

	// Console requests (client -> server)
	EventTypeRefresh EventType = "screen:refresh"

	// Subscription events
	EventTypeSubscribe   EventType = "subscribe"
	EventTypeUnsubscribe EventType = "unsubscribe"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType              `json:"type"`
	Data      interface{}            `json:"data,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	ID        string                 `json:"id,omitempty"`
}

// Subscription channels that clients can subscribe to
type ChannelType string

const (
	ChannelToasts        ChannelType = "toasts"
	ChannelInvalidations ChannelType = "invalidations"
	ChannelSession       ChannelType = "session"
)

// DefaultChannels are subscribed on connect.
var DefaultChannels = []ChannelType{ChannelToasts, ChannelInvalidations, ChannelSession}

type SubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

type UnsubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// RefreshRequest asks the console to re-fetch one screen's list.
type RefreshRequest struct {
	Resource string `json:"resource"`
}

// ErrorData for error events
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// InvalidationData tells open screens their list is stale.
type InvalidationData struct {
	Resource string `json:"resource"`
}

// SessionEventData for session events
type SessionEventData struct {
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// Helper to create messages
func NewMessage(eventType EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
		ID:        ulid.Make().String(),
	}
}

func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseMessage(data []byte) (*WSMessage, error) {
	var msg WSMessage
	err := json.Unmarshal(data, &msg)
	return &msg, err
}
