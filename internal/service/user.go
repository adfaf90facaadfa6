package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// UserStore defines the store operations the user service depends on.
type UserStore interface {
	Users() []domain.User
	ReplaceUsers(ctx context.Context, users []domain.User) error
}

// UserService implements business logic for roster operations.
// The roster is mutated by constructing a full replacement list;
// records are never hard-deleted.
type UserService struct {
	store UserStore
	now   func() time.Time
}

// NewUserService constructs a UserService backed by the provided store.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store, now: time.Now}
}

// List returns the roster in order.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	_ = ctx
	return s.store.Users(), nil
}

// Get returns one user by id.
// Returns domain.ErrNotFound when the id is unknown.
func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	_ = ctx
	for _, u := range s.store.Users() {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("service.UserService.Get: user %q: %w", id, domain.ErrNotFound)
}

// Create validates and appends a new roster member. The id and join date
// are assigned server-side; the role must be one of the four defined roles
// and is fixed from this point on.
func (s *UserService) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if u.Name == "" {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w: name is required", domain.ErrValidation)
	}
	if !u.Role.Valid() {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w: unknown role %q", domain.ErrValidation, u.Role)
	}

	u.ID = uuid.NewString()
	u.JoinedAt = s.now().UTC().Format("2006-01-02")

	next := append(s.store.Users(), u)
	if err := s.store.ReplaceUsers(ctx, next); err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
	}
	return u, nil
}

// Update changes the mutable fields of an existing user: name and Telegram
// chat id. ID, role, and join date are immutable; values supplied for them
// are ignored.
func (s *UserService) Update(ctx context.Context, u domain.User) (domain.User, error) {
	if u.Name == "" {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w: name is required", domain.ErrValidation)
	}

	users := s.store.Users()
	updated := domain.User{}
	found := false
	for i, existing := range users {
		if existing.ID == u.ID {
			existing.Name = u.Name
			existing.TelegramChatID = u.TelegramChatID
			users[i] = existing
			updated = existing
			found = true
			break
		}
	}
	if !found {
		return domain.User{}, fmt.Errorf("service.UserService.Update: user %q: %w", u.ID, domain.ErrNotFound)
	}

	if err := s.store.ReplaceUsers(ctx, users); err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return updated, nil
}
