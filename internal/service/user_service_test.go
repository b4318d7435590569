package service

import (
	"context"
	"testing"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserPopulatesCache(t *testing.T) {
	uow := newFakeUow()
	userCache := memory.NewUserCache()
	svc := NewUserService(&fakeFactory{uow: uow}, userCache)

	user := &entity.User{Id: uuid.New(), Name: "Alice", Email: "alice@example.com", Online: true}
	uow.users.users[user.Id] = user

	resp, err := svc.GetUser(context.Background(), user.Id)
	require.NoError(t, err)
	assert.Equal(t, user.Id, resp.Id)
	assert.True(t, resp.Online)

	cached, found := userCache.Get(user.Id)
	require.True(t, found)
	assert.Equal(t, user.Id, cached.Id)
}

func TestGetUserServesFromCache(t *testing.T) {
	uow := newFakeUow()
	userCache := memory.NewUserCache()
	svc := NewUserService(&fakeFactory{uow: uow}, userCache)

	// Only cached, not in the store.
	user := &entity.User{Id: uuid.New(), Name: "Cached", Email: "cached@example.com"}
	userCache.Set(user)

	resp, err := svc.GetUser(context.Background(), user.Id)
	require.NoError(t, err)
	assert.Equal(t, "Cached", resp.Name)
}

func TestGetUserUnknown(t *testing.T) {
	uow := newFakeUow()
	svc := NewUserService(&fakeFactory{uow: uow}, memory.NewUserCache())

	_, err := svc.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
