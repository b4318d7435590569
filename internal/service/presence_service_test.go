package service

import (
	"context"
	"errors"
	"testing"

	"realtime-chat-be/internal/dto"
	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/repository/memory"
	internalWS "realtime-chat-be/internal/websocket"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPresenceFixture() (*fakeUow, *fakeDelivery, *memory.UserCache, IPresenceService) {
	uow := newFakeUow()
	delivery := &fakeDelivery{}
	userCache := memory.NewUserCache()
	svc := NewPresenceService(&fakeFactory{uow: uow}, delivery, nil, nil, userCache, nopLogger{})
	return uow, delivery, userCache, svc
}

func TestMarkOnlinePersistsBeforeBroadcast(t *testing.T) {
	uow, delivery, _, svc := newPresenceFixture()
	trace := []string{}
	uow.users.trace = &trace
	delivery.trace = &trace

	user := &entity.User{Id: uuid.New()}
	uow.users.users[user.Id] = user

	require.NoError(t, svc.MarkOnline(context.Background(), user.Id))

	assert.True(t, user.Online)
	require.Equal(t, []string{"persist:online", "broadcast:" + internalWS.EventOnlineChange}, trace)

	require.Len(t, delivery.calls, 1)
	call := delivery.calls[0]
	assert.True(t, call.Broadcast)
	assert.Equal(t, internalWS.EventOnlineChange, call.EventType)

	payload, ok := call.Payload.(dto.OnlineChangeEvent)
	require.True(t, ok)
	assert.Equal(t, user.Id, payload.Id)
	assert.True(t, payload.Online)
}

func TestMarkOfflineBroadcastsFalseFlag(t *testing.T) {
	uow, delivery, _, svc := newPresenceFixture()

	user := &entity.User{Id: uuid.New(), Online: true}
	uow.users.users[user.Id] = user

	require.NoError(t, svc.MarkOffline(context.Background(), user.Id))

	assert.False(t, user.Online)
	require.Len(t, delivery.calls, 1)
	payload := delivery.calls[0].Payload.(dto.OnlineChangeEvent)
	assert.False(t, payload.Online)
}

func TestPresencePersistFailureSuppressesBroadcast(t *testing.T) {
	uow, delivery, _, svc := newPresenceFixture()
	uow.users.onlineErr = errors.New("connection refused")

	err := svc.MarkOnline(context.Background(), uuid.New())
	require.Error(t, err)

	// Nobody may observe a state the store never accepted.
	assert.Empty(t, delivery.calls)
}

func TestPresenceChangeInvalidatesUserCache(t *testing.T) {
	uow, _, userCache, svc := newPresenceFixture()

	user := &entity.User{Id: uuid.New()}
	uow.users.users[user.Id] = user
	userCache.Set(user)

	require.NoError(t, svc.MarkOnline(context.Background(), user.Id))

	_, found := userCache.Get(user.Id)
	assert.False(t, found, "stale cached record must be evicted on presence change")
}
