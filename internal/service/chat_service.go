package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"realtime-chat-be/internal/dto"
	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/pkg/logger"
	"realtime-chat-be/internal/repository/specification"
	"realtime-chat-be/internal/repository/unitofwork"
	internalWS "realtime-chat-be/internal/websocket"
	"realtime-chat-be/pkg/events"
	pktNats "realtime-chat-be/pkg/nats"

	"github.com/google/uuid"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrEmptyBody       = errors.New("message body is required")
)

type IChatService interface {
	// SendMessage persists a message and fans it out to the receiver's and
	// sender's live connections (receiver first, sender echo second).
	SendMessage(ctx context.Context, sender, receiver uuid.UUID, body string) (*dto.ChatMessageResponse, error)
	// MarkRead flips the read flag and notifies the original sender, if live.
	MarkRead(ctx context.Context, reader, messageID uuid.UUID) (*dto.ChatMessageResponse, error)
	CreateChat(ctx context.Context, owner uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	GetChats(ctx context.Context, userID uuid.UUID) ([]*dto.ChatResponse, error)
	GetMessages(ctx context.Context, userID, otherID uuid.UUID) ([]*dto.ChatMessageResponse, error)
}

type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	delivery          EventDelivery
	activityPublisher IActivityPublisher
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	delivery EventDelivery,
	activityPublisher IActivityPublisher,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:        uowFactory,
		delivery:          delivery,
		activityPublisher: activityPublisher,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

func (s *chatService) SendMessage(ctx context.Context, sender, receiver uuid.UUID, body string) (*dto.ChatMessageResponse, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}

	message := &entity.ChatMessage{
		Id:       uuid.New(),
		Sender:   sender,
		Receiver: receiver,
		Body:     body,
		Read:     false,
		Date:     time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	resp := toMessageResponse(message)

	// Fan-out happens only after the write succeeded. Receiver first, then the
	// sender's own echo; an offline side is silently skipped.
	s.delivery.Send(receiver, internalWS.EventChatMessage, resp)
	s.delivery.Send(sender, internalWS.EventChatMessage, resp)

	s.recordActivity(ctx, "MESSAGE_SENT", map[string]interface{}{
		"message_id": message.Id.String(),
		"sender":     sender.String(),
		"receiver":   receiver.String(),
	})

	return resp, nil
}

func (s *chatService) MarkRead(ctx context.Context, reader, messageID uuid.UUID) (*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.ChatMessageRepository().SetRead(ctx, messageID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to mark message read: %w", err)
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}

	resp := toMessageResponse(message)

	// Notify the original sender only; the reader already knows. A redundant
	// mark-read still notifies, there is deliberately no dedup guard here.
	s.delivery.Send(message.Sender, internalWS.EventReadMessage, resp)

	s.recordActivity(ctx, "MESSAGE_READ", map[string]interface{}{
		"message_id": message.Id.String(),
		"reader":     reader.String(),
	})

	return resp, nil
}

func (s *chatService) CreateChat(ctx context.Context, owner uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	chat := &entity.Chat{
		Id:        uuid.New(),
		Owner:     owner,
		With:      req.With,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	return toChatResponse(chat), nil
}

func (s *chatService) GetChats(ctx context.Context, userID uuid.UUID) ([]*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chats, err := uow.ChatRepository().FindAll(ctx, specification.ThreadsOf{UserID: userID})
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ChatResponse, len(chats))
	for i, chat := range chats {
		responses[i] = toChatResponse(chat)
	}
	return responses, nil
}

// GetMessages returns the full two-way history with the other user and marks
// everything received from them as read.
func (s *chatService) GetMessages(ctx context.Context, userID, otherID uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BetweenUsers{A: userID, B: otherID},
		specification.OrderByDate{},
	)
	if err != nil {
		return nil, err
	}

	if err := uow.ChatMessageRepository().MarkConversationRead(ctx, userID, otherID); err != nil {
		s.logger.Warn("ChatService", "Failed to mark conversation read", map[string]interface{}{"user_id": userID, "error": err.Error()})
	}

	responses := make([]*dto.ChatMessageResponse, len(messages))
	for i, message := range messages {
		responses[i] = toMessageResponse(message)
	}
	return responses, nil
}

func (s *chatService) recordActivity(ctx context.Context, eventType string, data map[string]interface{}) {
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if s.activityPublisher != nil {
		if err := s.activityPublisher.PublishActivity(ctx, event); err != nil {
			s.logger.Warn("ChatService", "Failed to publish activity", map[string]interface{}{"type": eventType, "error": err.Error()})
		}
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("ChatService", "Failed to publish integration event", map[string]interface{}{"type": eventType, "error": err.Error()})
		}
	}
}

func toMessageResponse(m *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Id:       m.Id,
		Sender:   m.Sender,
		Receiver: m.Receiver,
		Body:     m.Body,
		Date:     m.Date,
		Read:     m.Read,
	}
}

func toChatResponse(c *entity.Chat) *dto.ChatResponse {
	return &dto.ChatResponse{
		Id:        c.Id,
		Owner:     c.Owner,
		With:      c.With,
		CreatedAt: c.CreatedAt,
	}
}
