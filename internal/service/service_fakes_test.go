package service

import (
	"context"
	"sort"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/repository/contract"
	"realtime-chat-be/internal/repository/specification"
	"realtime-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// deliveryCall records one fan-out through the EventDelivery seam.
type deliveryCall struct {
	UserID    uuid.UUID
	EventType string
	Payload   interface{}
	Broadcast bool
}

// fakeDelivery captures fan-out order. An optional trace slice is shared with
// the repositories to assert persist-before-broadcast ordering.
type fakeDelivery struct {
	calls []deliveryCall
	trace *[]string
}

func (d *fakeDelivery) Send(userID uuid.UUID, eventType string, payload interface{}) {
	d.calls = append(d.calls, deliveryCall{UserID: userID, EventType: eventType, Payload: payload})
	if d.trace != nil {
		*d.trace = append(*d.trace, "send:"+eventType)
	}
}

func (d *fakeDelivery) Broadcast(eventType string, payload interface{}) {
	d.calls = append(d.calls, deliveryCall{EventType: eventType, Payload: payload, Broadcast: true})
	if d.trace != nil {
		*d.trace = append(*d.trace, "broadcast:"+eventType)
	}
}

type fakeUserRepo struct {
	users     map[uuid.UUID]*entity.User
	onlineErr error
	trace     *[]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) SetOnline(ctx context.Context, id uuid.UUID, online bool) error {
	if r.onlineErr != nil {
		return r.onlineErr
	}
	if u, ok := r.users[id]; ok {
		u.Online = online
	}
	if r.trace != nil {
		*r.trace = append(*r.trace, "persist:online")
	}
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		return u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeChatRepo struct {
	chats []*entity.Chat
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.chats = append(r.chats, chat)
	return nil
}

func (r *fakeChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	if len(r.chats) == 0 {
		return nil, nil
	}
	return r.chats[0], nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	return r.chats, nil
}

type fakeMessageRepo struct {
	messages  []*entity.ChatMessage
	createErr error
	trace     *[]string
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.messages = append(r.messages, message)
	if r.trace != nil {
		*r.trace = append(*r.trace, "persist:message")
	}
	return nil
}

func (r *fakeMessageRepo) SetRead(ctx context.Context, id uuid.UUID, read bool) (*entity.ChatMessage, error) {
	for _, m := range r.messages {
		if m.Id == id {
			m.Read = read
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) MarkConversationRead(ctx context.Context, receiver, sender uuid.UUID) error {
	for _, m := range r.messages {
		if m.Receiver == receiver && m.Sender == sender {
			m.Read = true
		}
	}
	return nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	if len(r.messages) == 0 {
		return nil, nil
	}
	return r.messages[0], nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	out := make([]*entity.ChatMessage, len(r.messages))
	copy(out, r.messages)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type fakeSystemLogRepo struct {
	logs []*entity.SystemLog
}

func (r *fakeSystemLogRepo) Create(ctx context.Context, log *entity.SystemLog) error {
	r.logs = append(r.logs, log)
	return nil
}

type fakeUow struct {
	users    *fakeUserRepo
	chats    *fakeChatRepo
	messages *fakeMessageRepo
	logs     *fakeSystemLogRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users:    newFakeUserRepo(),
		chats:    &fakeChatRepo{},
		messages: &fakeMessageRepo{},
		logs:     &fakeSystemLogRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository               { return u.users }
func (u *fakeUow) ChatRepository() contract.ChatRepository               { return u.chats }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository { return u.messages }
func (u *fakeUow) SystemLogRepository() contract.SystemLogRepository     { return u.logs }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }
