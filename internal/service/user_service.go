package service

import (
	"context"

	"filmorate/internal/cache"
	"filmorate/internal/models"
	"filmorate/internal/observability"
	"filmorate/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// UserService provides user CRUD and friendship business logic.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) AddUser(ctx context.Context, user *models.User) (_ *models.User, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "AddUser")
	defer func() { observability.EndSpan(span, err) }()

	return s.userRepo.Create(ctx, user)
}

func (s *UserService) UpdateUser(ctx context.Context, user *models.User) (_ *models.User, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "UpdateUser",
		attribute.Int64("user.id", user.ID))
	defer func() { observability.EndSpan(span, err) }()

	return s.userRepo.Update(ctx, user)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

// DeleteUser removes the user. Friend sets and likes that mention the id are kept
// and skipped at read time.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	// the ranking ignores likes from deleted users
	cache.InvalidatePopular(ctx)
	return nil
}

// AddFriend makes userID and friendID friends of each other.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID int64) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "AddFriend",
		attribute.Int64("user.id", userID), attribute.Int64("friend.id", friendID))
	defer func() { observability.EndSpan(span, err) }()

	if err := s.userRepo.AddFriend(ctx, userID, friendID); err != nil {
		return err
	}
	observability.FriendshipOperations.WithLabelValues("add").Inc()
	return nil
}

// RemoveFriend ends the friendship, if any. It never fails for users who were not friends.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int64) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "RemoveFriend",
		attribute.Int64("user.id", userID), attribute.Int64("friend.id", friendID))
	defer func() { observability.EndSpan(span, err) }()

	if err := s.userRepo.RemoveFriend(ctx, userID, friendID); err != nil {
		return err
	}
	observability.FriendshipOperations.WithLabelValues("remove").Inc()
	return nil
}

// Friends returns the user's friends that still exist.
func (s *UserService) Friends(ctx context.Context, userID int64) ([]*models.User, error) {
	return s.userRepo.FriendsOf(ctx, userID)
}

// CommonFriends returns the users that are friends with both userID and otherID.
func (s *UserService) CommonFriends(ctx context.Context, userID, otherID int64) ([]*models.User, error) {
	return s.userRepo.CommonFriends(ctx, userID, otherID)
}
