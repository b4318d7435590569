package websocket

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestClient(hub *Hub, userID uuid.UUID) *Client {
	return NewClient(hub, nil, userID, nil, nopLogger{})
}

func isClosed(c *Client) bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func drainEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var ev Event
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	default:
		t.Fatal("expected a queued event, send buffer is empty")
		return Event{}
	}
}

func TestHubRegisterAndLookup(t *testing.T) {
	hub := NewHub(nopLogger{})
	userID := uuid.New()
	client := newTestClient(hub, userID)

	hub.Register(client)

	got, ok := hub.Lookup(userID)
	require.True(t, ok)
	assert.Same(t, client, got)

	_, ok = hub.Lookup(uuid.New())
	assert.False(t, ok)
}

func TestHubLastConnectionWins(t *testing.T) {
	hub := NewHub(nopLogger{})
	userID := uuid.New()
	first := newTestClient(hub, userID)
	second := newTestClient(hub, userID)

	hub.Register(first)
	hub.Register(second)

	got, ok := hub.Lookup(userID)
	require.True(t, ok)
	assert.Same(t, second, got)

	// The displaced connection must be shut down, the new one left alone.
	assert.True(t, isClosed(first))
	assert.False(t, isClosed(second))
}

func TestHubUnregisterRemovesOwnerOnly(t *testing.T) {
	hub := NewHub(nopLogger{})
	userID := uuid.New()
	first := newTestClient(hub, userID)
	second := newTestClient(hub, userID)

	hub.Register(first)
	hub.Register(second)

	// Teardown of the displaced connection must not evict its successor.
	assert.False(t, hub.Unregister(first))
	got, ok := hub.Lookup(userID)
	require.True(t, ok)
	assert.Same(t, second, got)

	assert.True(t, hub.Unregister(second))
	_, ok = hub.Lookup(userID)
	assert.False(t, ok)
}

func TestHubSendQueuesEnvelope(t *testing.T) {
	hub := NewHub(nopLogger{})
	userID := uuid.New()
	client := newTestClient(hub, userID)
	hub.Register(client)

	hub.Send(userID, EventChatMessage, map[string]string{"body": "hello"})

	ev := drainEvent(t, client)
	assert.Equal(t, EventChatMessage, ev.Type)
}

func TestHubSendToOfflineUserIsSilent(t *testing.T) {
	hub := NewHub(nopLogger{})

	// Must not panic or error; an offline target is a normal state.
	hub.Send(uuid.New(), EventChatMessage, map[string]string{"body": "hello"})
}

func TestHubBroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub(nopLogger{})
	a := newTestClient(hub, uuid.New())
	b := newTestClient(hub, uuid.New())
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(EventOnlineChange, map[string]bool{"online": true})

	assert.Equal(t, EventOnlineChange, drainEvent(t, a).Type)
	assert.Equal(t, EventOnlineChange, drainEvent(t, b).Type)
}

func TestHubDropsClientWithFullBuffer(t *testing.T) {
	hub := NewHub(nopLogger{})
	userID := uuid.New()
	client := newTestClient(hub, userID)
	hub.Register(client)

	for i := 0; i < cap(client.send); i++ {
		require.True(t, client.deliver([]byte("{}")))
	}

	// The next event cannot be queued; the slow client is evicted.
	hub.Send(userID, EventChatMessage, map[string]string{"body": "overflow"})

	_, ok := hub.Lookup(userID)
	assert.False(t, ok)
	assert.True(t, isClosed(client))
}

func TestClientDeliverAfterCloseFails(t *testing.T) {
	hub := NewHub(nopLogger{})
	client := newTestClient(hub, uuid.New())

	client.close()
	assert.False(t, client.deliver([]byte("{}")))

	// close is idempotent
	client.close()
}
