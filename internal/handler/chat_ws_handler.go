package handler

import (
	"realtime-chat-be/internal/pkg/logger"
	"realtime-chat-be/internal/pkg/token"
	internalWS "realtime-chat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatWsHandler upgrades authenticated clients to a live websocket session.
type ChatWsHandler struct {
	hub          *internalWS.Hub
	tokenManager *token.Manager
	presence     internalWS.PresenceNotifier
	router       internalWS.InboundRouter
	logger       logger.ILogger
}

func NewChatWsHandler(
	hub *internalWS.Hub,
	tokenManager *token.Manager,
	presence internalWS.PresenceNotifier,
	router internalWS.InboundRouter,
	log logger.ILogger,
) *ChatWsHandler {
	return &ChatWsHandler{
		hub:          hub,
		tokenManager: tokenManager,
		presence:     presence,
		router:       router,
		logger:       log,
	}
}

// ServeWs handles websocket requests from the peer. A connection with a
// missing or invalid credential is rejected before the upgrade; both
// transports apply the same verification.
func (h *ChatWsHandler) ServeWs(c *fiber.Ctx) error {
	// Priority 1: query param (browser standard).
	tokenStr := c.Query("token")

	// Priority 2: Authorization header (tooling standard).
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (query 'token' or header 'Authorization')"})
	}

	userID, err := h.tokenManager.Verify(tokenStr)
	if err != nil {
		h.logger.Warn("ChatWsHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatWsHandler", "Starting websocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID, h.presence, h.router, h.logger)
			h.logger.Info("ChatWsHandler", "Websocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket endpoint.
func (h *ChatWsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
