package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kuzo2004/java-filmorate/internal/domain"
	"github.com/kuzo2004/java-filmorate/internal/store"
)

// UserService — операции над пользователями: уникальность email/login,
// правило name-по-умолчанию, управление дружбой.
type UserService struct {
	users  store.UserStore
	logger *slog.Logger
}

func NewUserService(users store.UserStore, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) Add(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.checkUniqueness(ctx, user, 0); err != nil {
		return nil, err
	}
	applyNameDefault(user)

	added, err := s.users.Add(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "User created", slog.Int("userID", added.ID))
	return added, nil
}

func (s *UserService) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.ValidateExists(ctx, user.ID); err != nil {
		return nil, err
	}
	// Уникальность проверяем, исключая собственную запись пользователя.
	if err := s.checkUniqueness(ctx, user, user.ID); err != nil {
		return nil, err
	}
	applyNameDefault(user)

	// Полный update: непереданные друзья означают пустое множество,
	// каждый переданный id должен существовать.
	if user.Friends == nil {
		user.Friends = []int{}
	}
	for _, friendID := range user.Friends {
		if err := s.ValidateExists(ctx, friendID); err != nil {
			return nil, err
		}
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "User fully updated", slog.Int("userID", updated.ID))
	return updated, nil
}

func (s *UserService) FindByID(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, NewNotFoundError("user with id %d not found", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	return s.users.GetAll(ctx)
}

// ValidateExists возвращает NotFoundError, если пользователя с таким id нет.
func (s *UserService) ValidateExists(ctx context.Context, id int) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return NewNotFoundError("user with id %d not found", id)
	}
	return nil
}

func (s *UserService) AddFriend(ctx context.Context, userID, friendID int) error {
	if userID == friendID {
		s.logger.DebugContext(ctx, "Self-friending rejected", slog.Int("userID", userID))
		return NewDuplicateError("user cannot friend themselves")
	}
	if err := s.ValidateExists(ctx, userID); err != nil {
		return err
	}
	if err := s.ValidateExists(ctx, friendID); err != nil {
		return err
	}

	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.HasFriend(friendID) {
		s.logger.DebugContext(ctx, "Duplicate friendship rejected",
			slog.Int("userID", userID), slog.Int("friendID", friendID))
		return NewDuplicateError("user %d is already a friend of user %d", friendID, userID)
	}

	if err := s.users.AddFriend(ctx, userID, friendID); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Friend added", slog.Int("userID", userID), slog.Int("friendID", friendID))
	return nil
}

// RemoveFriend несуществующей связи — тихий no-op.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int) error {
	if userID == friendID {
		s.logger.DebugContext(ctx, "Self-unfriending rejected", slog.Int("userID", userID))
		return NewDuplicateError("user cannot unfriend themselves")
	}
	if err := s.ValidateExists(ctx, userID); err != nil {
		return err
	}
	if err := s.ValidateExists(ctx, friendID); err != nil {
		return err
	}

	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasFriend(friendID) {
		s.logger.DebugContext(ctx, "Friendship not found, nothing to remove",
			slog.Int("userID", userID), slog.Int("friendID", friendID))
		return nil
	}

	if err := s.users.RemoveFriend(ctx, userID, friendID); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Friend removed", slog.Int("userID", userID), slog.Int("friendID", friendID))
	return nil
}

func (s *UserService) GetFriends(ctx context.Context, userID int) ([]*domain.User, error) {
	if err := s.ValidateExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.users.GetFriends(ctx, userID)
}

func (s *UserService) GetCommonFriends(ctx context.Context, userID, otherID int) ([]*domain.User, error) {
	if err := s.ValidateExists(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.ValidateExists(ctx, otherID); err != nil {
		return nil, err
	}
	return s.users.GetCommonFriends(ctx, userID, otherID)
}

func (s *UserService) checkUniqueness(ctx context.Context, user *domain.User, excludeID int) error {
	emailTaken, err := s.users.ExistsByEmail(ctx, user.Email, excludeID)
	if err != nil {
		return err
	}
	if emailTaken {
		return NewDuplicateError("email %s is already in use", user.Email)
	}

	loginTaken, err := s.users.ExistsByLogin(ctx, user.Login, excludeID)
	if err != nil {
		return err
	}
	if loginTaken {
		return NewDuplicateError("login %s is already in use", user.Login)
	}
	return nil
}

// applyNameDefault: пустое или состоящее из пробелов имя заменяется логином.
func applyNameDefault(user *domain.User) {
	if strings.TrimSpace(user.Name) == "" {
		user.Name = user.Login
	}
}
