package service

import (
	"context"
	"testing"
	"time"

	"realtime-chat-be/internal/dto"
	"realtime-chat-be/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*fakeUow, IAuthService, *token.Manager) {
	uow := newFakeUow()
	tm := token.NewManager("test_secret", time.Hour)
	svc := NewAuthService(&fakeFactory{uow: uow}, tm, nil, nopLogger{})
	return uow, svc, tm
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	uow, svc, tm := newAuthFixture()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "Alice", resp.User.Name)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.False(t, resp.User.Online)

	// Token carries the new user's identity.
	userID, err := tm.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.Id, userID)

	// Password is stored hashed, never verbatim.
	require.Len(t, uow.users.users, 1)
	for _, u := range uow.users.users {
		assert.NotEqual(t, "password123", u.PasswordHash)
		assert.NotEmpty(t, u.PasswordHash)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	_, svc, _ := newAuthFixture()

	req := &dto.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginWithValidCredentials(t *testing.T) {
	_, svc, tm := newAuthFixture()

	registered, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "bob@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	userID, err := tm.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.Id, userID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	_, svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "bob@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
