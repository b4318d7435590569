package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"realtime-chat-be/internal/dto"
	"realtime-chat-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// Bound on the persistence work triggered by a single inbound event.
	inboundTimeout = 10 * time.Second
)

// InboundRouter handles the events a live connection may send. Implemented by
// the chat service, which persists first and then fans out through the hub.
type InboundRouter interface {
	SendMessage(ctx context.Context, sender, receiver uuid.UUID, body string) (*dto.ChatMessageResponse, error)
	MarkRead(ctx context.Context, reader, messageID uuid.UUID) (*dto.ChatMessageResponse, error)
}

// Client is one live, authenticated transport session. Owned by the Hub once
// registered; never persisted.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// UserID is the stable identity bound to this connection at handshake.
	UserID uuid.UUID

	// Buffered channel of outbound serialized events.
	send chan []byte

	// done is closed exactly once when the client is shut down (disconnect,
	// displacement on reconnect, or a full send buffer).
	done      chan struct{}
	closeOnce sync.Once

	router InboundRouter
	logger logger.ILogger
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, router InboundRouter, log logger.ILogger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		UserID: userID,
		send:   make(chan []byte, 256),
		done:   make(chan struct{}),
		router: router,
		logger: log,
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// deliver enqueues a serialized event without blocking. Reports false when the
// client is shut down or its buffer is full.
func (c *Client) deliver(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// readPump pumps inbound events from the websocket connection to the router.
// Runs on the connection's handler goroutine; returns on disconnect.
func (c *Client) readPump() {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("Client", "Unexpected close", map[string]interface{}{"user_id": c.UserID, "error": err.Error()})
			}
			return
		}
		c.handleInbound(raw)
	}
}

// handleInbound dispatches a single inbound event. Failures are reported back
// on this connection only and never tear it down.
func (c *Client) handleInbound(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.sendError("malformed event payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), inboundTimeout)
	defer cancel()

	switch env.Type {
	case EventSendMessage:
		var p dto.SendMessagePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.sendError("malformed send-message payload")
			return
		}
		if _, err := c.router.SendMessage(ctx, c.UserID, p.Receiver, p.Body); err != nil {
			c.sendError(err.Error())
		}

	case EventMarkRead:
		var p dto.MarkReadPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.sendError("malformed mark-read payload")
			return
		}
		if _, err := c.router.MarkRead(ctx, c.UserID, p.MessageId); err != nil {
			c.sendError(err.Error())
		}

	default:
		c.sendError("unknown event type: " + env.Type)
	}
}

func (c *Client) sendError(msg string) {
	data, err := json.Marshal(Event{Type: EventError, Data: dto.ErrorEvent{Message: msg}})
	if err != nil {
		return
	}
	c.deliver(data)
}

// writePump pumps events from the send buffer to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush any further queued events into the same frame batch.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
