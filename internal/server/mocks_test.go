package server

import (
	"context"

	"filmorate/internal/models"
	"filmorate/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockFilmRepository struct {
	mock.Mock
}

func (m *MockFilmRepository) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	args := m.Called(ctx, film)
	if f := args.Get(0); f != nil {
		return f.(*models.Film), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFilmRepository) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	args := m.Called(ctx, film)
	if f := args.Get(0); f != nil {
		return f.(*models.Film), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFilmRepository) GetByID(ctx context.Context, id int64) (*models.Film, error) {
	args := m.Called(ctx, id)
	if f := args.Get(0); f != nil {
		return f.(*models.Film), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFilmRepository) List(ctx context.Context) ([]*models.Film, error) {
	args := m.Called(ctx)
	if f := args.Get(0); f != nil {
		return f.([]*models.Film), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFilmRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFilmRepository) Exists(ctx context.Context, id int64) bool {
	return m.Called(ctx, id).Bool(0)
}

func (m *MockFilmRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	return m.Called(ctx, filmID, userID).Error(0)
}

func (m *MockFilmRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	return m.Called(ctx, filmID, userID).Error(0)
}

func (m *MockFilmRepository) Popular(ctx context.Context, count int, isLive repository.LivenessFunc) ([]*models.Film, error) {
	args := m.Called(ctx, count, isLive)
	if f := args.Get(0); f != nil {
		return f.([]*models.Film), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) Exists(ctx context.Context, id int64) bool {
	return m.Called(ctx, id).Bool(0)
}

func (m *MockUserRepository) AddFriend(ctx context.Context, userID, friendID int64) error {
	return m.Called(ctx, userID, friendID).Error(0)
}

func (m *MockUserRepository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	return m.Called(ctx, userID, friendID).Error(0)
}

func (m *MockUserRepository) FriendsOf(ctx context.Context, userID int64) ([]*models.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) CommonFriends(ctx context.Context, userID, otherID int64) ([]*models.User, error) {
	args := m.Called(ctx, userID, otherID)
	if u := args.Get(0); u != nil {
		return u.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}
