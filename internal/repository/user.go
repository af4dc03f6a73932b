package repository

import (
	"context"
	"sort"
	"sync"

	"filmorate/internal/models"
	"filmorate/internal/observability"
)

// UserRepository defines persistence operations for users and their friendships.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) bool
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	FriendsOf(ctx context.Context, userID int64) ([]*models.User, error)
	CommonFriends(ctx context.Context, userID, otherID int64) ([]*models.User, error)
}

type userRepository struct {
	mu     sync.RWMutex
	users  map[int64]*models.User
	seq    *Sequence
	logger *observability.RepoLogger
}

// NewUserRepository returns an empty user store drawing ids from seq.
func NewUserRepository(seq *Sequence) UserRepository {
	if seq == nil {
		seq = NewSequence()
	}
	return &userRepository{
		users:  make(map[int64]*models.User),
		seq:    seq,
		logger: observability.NewRepoLogger("users"),
	}
}

// prepare copies the input, applies the name default and validates the copy.
func (r *userRepository) prepare(ctx context.Context, user *models.User, operation string) (*models.User, error) {
	candidate := user.Clone()
	candidate.ApplyDefaults()
	if err := models.ValidateUser(candidate); err != nil {
		r.logger.LogError(ctx, err, operation)
		return nil, err
	}
	return candidate, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	stored, err := r.prepare(ctx, user, "create")
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	stored.ID = r.seq.Next()
	stored.Friends = models.NewIDSet()
	r.users[stored.ID] = stored
	total := len(r.users)
	r.mu.Unlock()

	observability.UsersTotal.Set(float64(total))
	r.logger.LogCreate(ctx, map[string]interface{}{"id": stored.ID, "login": stored.Login})
	return stored.Clone(), nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	updated, err := r.prepare(ctx, user, "update")
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return nil, models.NewNotFoundError("User", user.ID)
	}
	updated.Friends = existing.Friends
	r.users[user.ID] = updated

	r.logger.LogUpdate(ctx, map[string]interface{}{"id": updated.ID})
	return updated.Clone(), nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	return user.Clone(), nil
}

func (r *userRepository) List(_ context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u.Clone())
	}
	sortUsers(users)
	return users, nil
}

// Delete removes the user. Other users keep the id in their friend sets.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	_, existed := r.users[id]
	delete(r.users, id)
	total := len(r.users)
	r.mu.Unlock()

	if existed {
		observability.UsersTotal.Set(float64(total))
		r.logger.LogDelete(ctx, map[string]interface{}{"id": id})
	}
	return nil
}

func (r *userRepository) Exists(_ context.Context, id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok
}

// AddFriend links both users in a single critical section.
func (r *userRepository) AddFriend(_ context.Context, userID, friendID int64) error {
	if userID == friendID {
		return models.NewValidationError("Cannot add yourself as a friend")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return models.NewNotFoundError("User", userID)
	}
	friend, ok := r.users[friendID]
	if !ok {
		return models.NewNotFoundError("User", friendID)
	}
	user.Friends[friendID] = struct{}{}
	friend.Friends[userID] = struct{}{}
	return nil
}

// RemoveFriend unlinks both sides that still exist. Unknown ids are ignored.
func (r *userRepository) RemoveFriend(_ context.Context, userID, friendID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[userID]; ok {
		delete(user.Friends, friendID)
	}
	if friend, ok := r.users[friendID]; ok {
		delete(friend.Friends, userID)
	}
	return nil
}

func (r *userRepository) FriendsOf(_ context.Context, userID int64) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, models.NewNotFoundError("User", userID)
	}
	return r.resolve(user.Friends), nil
}

func (r *userRepository) CommonFriends(_ context.Context, userID, otherID int64) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, models.NewNotFoundError("User", userID)
	}
	other, ok := r.users[otherID]
	if !ok {
		return nil, models.NewNotFoundError("User", otherID)
	}
	return r.resolve(user.Friends.Intersect(other.Friends)), nil
}

// resolve maps ids to user copies, skipping ids that no longer exist.
// Callers hold at least the read lock.
func (r *userRepository) resolve(ids models.IDSet) []*models.User {
	users := make([]*models.User, 0, len(ids))
	for id := range ids {
		if u, ok := r.users[id]; ok {
			users = append(users, u.Clone())
		}
	}
	sortUsers(users)
	return users
}

func sortUsers(users []*models.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
}
