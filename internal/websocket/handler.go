package websocket

import (
	"context"
	"time"

	"realtime-chat-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// PresenceNotifier flips the durable online flag and announces the change to
// all live connections. Implemented by the presence service.
type PresenceNotifier interface {
	MarkOnline(ctx context.Context, id uuid.UUID) error
	MarkOffline(ctx context.Context, id uuid.UUID) error
}

const presenceTimeout = 10 * time.Second

// ServeWs runs the lifecycle of one authenticated connection: register, mark
// online, pump events, and on disconnect deregister and mark offline. Blocks
// until the connection is gone.
func ServeWs(hub *Hub, conn *websocket.Conn, userID uuid.UUID, presence PresenceNotifier, router InboundRouter, log logger.ILogger) {
	client := NewClient(hub, conn, userID, router, log)
	hub.Register(client)

	ctx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
	err := presence.MarkOnline(ctx, userID)
	cancel()
	if err != nil {
		// The store write failed: no broadcast went out, and this connection
		// never reaches Live.
		log.Error("ServeWs", "Failed to mark user online", map[string]interface{}{"user_id": userID, "error": err.Error()})
		hub.Unregister(client)
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()

	// Only the connection that still owns the registry entry may flip the user
	// offline; a displaced connection's teardown must not mask its successor.
	if hub.Unregister(client) {
		ctx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
		if err := presence.MarkOffline(ctx, userID); err != nil {
			log.Error("ServeWs", "Failed to mark user offline", map[string]interface{}{"user_id": userID, "error": err.Error()})
		}
		cancel()
	}
}
