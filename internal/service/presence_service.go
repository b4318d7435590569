package service

import (
	"context"
	"fmt"
	"time"

	"realtime-chat-be/internal/dto"
	"realtime-chat-be/internal/pkg/logger"
	"realtime-chat-be/internal/repository/memory"
	"realtime-chat-be/internal/repository/unitofwork"
	internalWS "realtime-chat-be/internal/websocket"
	"realtime-chat-be/pkg/events"
	pktNats "realtime-chat-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EventDelivery defines how real-time events reach live connections.
// Implemented by the WebSocket Hub.
type EventDelivery interface {
	Send(userID uuid.UUID, eventType string, payload interface{})
	Broadcast(eventType string, payload interface{})
}

type IPresenceService interface {
	MarkOnline(ctx context.Context, id uuid.UUID) error
	MarkOffline(ctx context.Context, id uuid.UUID) error
}

type presenceService struct {
	uowFactory     unitofwork.RepositoryFactory
	delivery       EventDelivery
	rdb            *redis.Client
	eventPublisher *pktNats.Publisher
	userCache      *memory.UserCache
	logger         logger.ILogger
}

func NewPresenceService(
	uowFactory unitofwork.RepositoryFactory,
	delivery EventDelivery,
	rdb *redis.Client,
	eventPublisher *pktNats.Publisher,
	userCache *memory.UserCache,
	log logger.ILogger,
) IPresenceService {
	return &presenceService{
		uowFactory:     uowFactory,
		delivery:       delivery,
		rdb:            rdb,
		eventPublisher: eventPublisher,
		userCache:      userCache,
		logger:         log,
	}
}

func (s *presenceService) MarkOnline(ctx context.Context, id uuid.UUID) error {
	return s.setOnline(ctx, id, true)
}

func (s *presenceService) MarkOffline(ctx context.Context, id uuid.UUID) error {
	return s.setOnline(ctx, id, false)
}

func (s *presenceService) setOnline(ctx context.Context, id uuid.UUID, online bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The durable write is awaited before anything is announced, so a client
	// that queries fresh state after the broadcast observes consistency.
	if err := uow.UserRepository().SetOnline(ctx, id, online); err != nil {
		return fmt.Errorf("failed to persist presence for %s: %w", id, err)
	}

	s.userCache.Invalidate(id)

	s.delivery.Broadcast(internalWS.EventOnlineChange, dto.OnlineChangeEvent{Id: id, Online: online})

	s.mirrorPresence(ctx, id, online)
	s.publishPresenceEvent(ctx, id, online)

	return nil
}

// mirrorPresence keeps a best-effort copy of the flag in Redis for fast
// external lookups. Never fatal.
func (s *presenceService) mirrorPresence(ctx context.Context, id uuid.UUID, online bool) {
	if s.rdb == nil {
		return
	}

	key := "presence:" + id.String()
	var err error
	if online {
		err = s.rdb.Set(ctx, key, "1", 0).Err()
	} else {
		err = s.rdb.Del(ctx, key).Err()
	}
	if err != nil {
		s.logger.Warn("PresenceService", "Failed to mirror presence to Redis", map[string]interface{}{"user_id": id, "error": err.Error()})
	}
}

func (s *presenceService) publishPresenceEvent(ctx context.Context, id uuid.UUID, online bool) {
	if s.eventPublisher == nil {
		return
	}

	eventType := "USER_OFFLINE"
	if online {
		eventType = "USER_ONLINE"
	}

	event := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"user_id": id.String(),
			"online":  online,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("PresenceService", "Failed to publish presence event", map[string]interface{}{"user_id": id, "error": err.Error()})
	}
}
