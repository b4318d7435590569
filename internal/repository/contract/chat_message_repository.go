package contract

import (
	"context"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	// SetRead flips the read flag and returns the mutated message, or nil when
	// the message does not exist.
	SetRead(ctx context.Context, id uuid.UUID, read bool) (*entity.ChatMessage, error)
	// MarkConversationRead marks every message sent from sender to receiver as read.
	MarkConversationRead(ctx context.Context, receiver, sender uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
}
