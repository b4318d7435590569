package service

import (
	"context"
	"errors"

	"realtime-chat-be/internal/dto"
	"realtime-chat-be/internal/repository/memory"
	"realtime-chat-be/internal/repository/specification"
	"realtime-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type IUserService interface {
	// GetUsers lists every other user, online flag included.
	GetUsers(ctx context.Context, requester uuid.UUID) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	userCache  *memory.UserCache
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, userCache *memory.UserCache) IUserService {
	return &userService{
		uowFactory: uowFactory,
		userCache:  userCache,
	}
}

func (s *userService) GetUsers(ctx context.Context, requester uuid.UUID) (*dto.UserListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx, specification.ExcludingUser{UserID: requester})
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.UserResponse, len(users))
	for i, user := range users {
		responses[i] = toUserResponse(user)
	}
	return &dto.UserListResponse{Users: responses}, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	if cached, found := s.userCache.Get(id); found {
		return toUserResponse(cached), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	s.userCache.Set(user)
	return toUserResponse(user), nil
}
