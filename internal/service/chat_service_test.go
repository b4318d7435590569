package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"realtime-chat-be/internal/dto"
	"realtime-chat-be/internal/entity"
	internalWS "realtime-chat-be/internal/websocket"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture() (*fakeUow, *fakeDelivery, IChatService) {
	uow := newFakeUow()
	delivery := &fakeDelivery{}
	svc := NewChatService(&fakeFactory{uow: uow}, delivery, nil, nil, nopLogger{})
	return uow, delivery, svc
}

func TestSendMessagePersistsThenFansOut(t *testing.T) {
	uow, delivery, svc := newChatFixture()
	trace := []string{}
	uow.messages.trace = &trace
	delivery.trace = &trace

	sender := uuid.New()
	receiver := uuid.New()

	resp, err := svc.SendMessage(context.Background(), sender, receiver, "hello")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, sender, resp.Sender)
	assert.Equal(t, receiver, resp.Receiver)
	assert.Equal(t, "hello", resp.Body)
	assert.False(t, resp.Read)

	require.Len(t, uow.messages.messages, 1)

	// Durable write strictly precedes any fan-out.
	require.GreaterOrEqual(t, len(trace), 3)
	assert.Equal(t, "persist:message", trace[0])

	// Receiver first, then the sender's own echo.
	require.Len(t, delivery.calls, 2)
	assert.Equal(t, receiver, delivery.calls[0].UserID)
	assert.Equal(t, internalWS.EventChatMessage, delivery.calls[0].EventType)
	assert.Equal(t, sender, delivery.calls[1].UserID)
	assert.Equal(t, internalWS.EventChatMessage, delivery.calls[1].EventType)
}

func TestSendMessageRejectsEmptyBody(t *testing.T) {
	uow, delivery, svc := newChatFixture()

	_, err := svc.SendMessage(context.Background(), uuid.New(), uuid.New(), "   ")
	require.ErrorIs(t, err, ErrEmptyBody)

	assert.Empty(t, uow.messages.messages)
	assert.Empty(t, delivery.calls)
}

func TestSendMessageStoreFailureSuppressesFanOut(t *testing.T) {
	uow, delivery, svc := newChatFixture()
	uow.messages.createErr = errors.New("connection refused")

	_, err := svc.SendMessage(context.Background(), uuid.New(), uuid.New(), "hello")
	require.Error(t, err)

	// Nothing was persisted, so nobody may observe the message.
	assert.Empty(t, delivery.calls)
}

func TestMarkReadNotifiesOriginalSenderOnly(t *testing.T) {
	uow, delivery, svc := newChatFixture()

	sender := uuid.New()
	receiver := uuid.New()
	msg := &entity.ChatMessage{Id: uuid.New(), Sender: sender, Receiver: receiver, Body: "hi", Date: time.Now()}
	uow.messages.messages = append(uow.messages.messages, msg)

	resp, err := svc.MarkRead(context.Background(), receiver, msg.Id)
	require.NoError(t, err)
	assert.True(t, resp.Read)
	assert.True(t, msg.Read)

	require.Len(t, delivery.calls, 1)
	assert.Equal(t, sender, delivery.calls[0].UserID)
	assert.Equal(t, internalWS.EventReadMessage, delivery.calls[0].EventType)
}

func TestMarkReadUnknownMessage(t *testing.T) {
	_, delivery, svc := newChatFixture()

	_, err := svc.MarkRead(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrMessageNotFound)
	assert.Empty(t, delivery.calls)
}

func TestMarkReadIsNotDeduplicated(t *testing.T) {
	uow, delivery, svc := newChatFixture()

	msg := &entity.ChatMessage{Id: uuid.New(), Sender: uuid.New(), Receiver: uuid.New(), Body: "hi", Read: true, Date: time.Now()}
	uow.messages.messages = append(uow.messages.messages, msg)

	// A redundant mark-read still notifies the sender.
	_, err := svc.MarkRead(context.Background(), msg.Receiver, msg.Id)
	require.NoError(t, err)
	require.Len(t, delivery.calls, 1)
	assert.Equal(t, msg.Sender, delivery.calls[0].UserID)
}

func TestGetMessagesReturnsHistoryAndFlipsUnread(t *testing.T) {
	uow, _, svc := newChatFixture()

	me := uuid.New()
	other := uuid.New()
	base := time.Now()

	incoming := &entity.ChatMessage{Id: uuid.New(), Sender: other, Receiver: me, Body: "first", Date: base}
	outgoing := &entity.ChatMessage{Id: uuid.New(), Sender: me, Receiver: other, Body: "second", Date: base.Add(time.Minute)}
	uow.messages.messages = append(uow.messages.messages, outgoing, incoming)

	history, err := svc.GetMessages(context.Background(), me, other)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Oldest first.
	assert.Equal(t, "first", history[0].Body)
	assert.Equal(t, "second", history[1].Body)

	// Everything received from the other user is now read; our own is untouched.
	assert.True(t, incoming.Read)
	assert.False(t, outgoing.Read)
}

func TestCreateChatAndGetChats(t *testing.T) {
	_, _, svc := newChatFixture()

	owner := uuid.New()
	with := uuid.New()

	created, err := svc.CreateChat(context.Background(), owner, &dto.CreateChatRequest{With: with})
	require.NoError(t, err)
	assert.Equal(t, owner, created.Owner)
	assert.Equal(t, with, created.With)

	chats, err := svc.GetChats(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, created.Id, chats[0].Id)
}
