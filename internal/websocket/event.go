package websocket

import "encoding/json"

// Outbound event types pushed to live connections.
const (
	EventOnlineChange = "online-change"
	EventChatMessage  = "chat-message"
	EventReadMessage  = "read-message-query"
	EventError        = "error"
)

// Inbound event types accepted from a live connection.
const (
	EventSendMessage = "send-message"
	EventMarkRead    = "mark-read"
)

// Event is the wire envelope for every pushed event.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Envelope is the inbound counterpart; Data stays raw until the type is known.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}
