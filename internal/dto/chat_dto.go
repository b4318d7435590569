package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	With uuid.UUID `json:"with" validate:"required"`
}

type ChatResponse struct {
	Id        uuid.UUID `json:"id"`
	Owner     uuid.UUID `json:"owner"`
	With      uuid.UUID `json:"with"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	Receiver uuid.UUID `json:"receiver" validate:"required"`
	Body     string    `json:"body" validate:"required"`
}

// ChatMessageResponse doubles as the payload of the chat-message and
// read-message-query events.
type ChatMessageResponse struct {
	Id       uuid.UUID `json:"id"`
	Sender   uuid.UUID `json:"sender"`
	Receiver uuid.UUID `json:"receiver"`
	Body     string    `json:"body"`
	Date     time.Time `json:"date"`
	Read     bool      `json:"read"`
}
