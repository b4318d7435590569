package dto

import (
	"time"

	"github.com/google/uuid"
)

// OnlineChangeEvent is broadcast to every live connection when an identity's
// presence flips, including the identity's own connection.
type OnlineChangeEvent struct {
	Id     uuid.UUID `json:"id"`
	Online bool      `json:"online"`
}

// ErrorEvent is delivered only to the connection whose inbound event failed.
type ErrorEvent struct {
	Message string `json:"message"`
}

// Inbound payloads accepted from a live connection.

type SendMessagePayload struct {
	Receiver uuid.UUID `json:"receiver"`
	Body     string    `json:"body"`
}

type MarkReadPayload struct {
	MessageId uuid.UUID `json:"message_id"`
}

// ActivityMessage is the wire shape carried on the in-process activity bus and
// persisted by the consumer as a system log row.
type ActivityMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
