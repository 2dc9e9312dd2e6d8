package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/kuzo2004/java-filmorate/internal/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// UserStore определяет интерфейс хранилища пользователей.
// Агрегат User собирается из строки users и множества id друзей
// (направленные связи; друзья не разворачиваются в полные объекты).
type UserStore interface {
	Add(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
	// excludeID исключает одну запись из проверки уникальности (0 — не исключать).
	ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error)
	ExistsByLogin(ctx context.Context, login string, excludeID int) (bool, error)
	AddFriend(ctx context.Context, userID, friendID int) error
	RemoveFriend(ctx context.Context, userID, friendID int) error
	GetFriends(ctx context.Context, userID int) ([]*domain.User, error)
	GetCommonFriends(ctx context.Context, userID, otherID int) ([]*domain.User, error)
}

// MemoryUserStore — потокобезопасное хранилище пользователей в памяти.
type MemoryUserStore struct {
	mu      sync.RWMutex
	users   map[int]*domain.User
	friends map[int]map[int]struct{} // направленные связи user -> friend
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:   make(map[int]*domain.User),
		friends: make(map[int]map[int]struct{}),
	}
}

func (m *MemoryUserStore) Add(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.ID = m.nextID()
	stored := copyUser(user)
	stored.Friends = nil
	m.users[stored.ID] = stored

	return m.userWithFriends(stored), nil
}

func (m *MemoryUserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return nil, ErrUserNotFound
	}

	stored := copyUser(user)
	stored.Friends = nil
	m.users[stored.ID] = stored

	// Полная замена множества друзей из пришедшего объекта.
	edges := make(map[int]struct{}, len(user.Friends))
	for _, friendID := range user.Friends {
		edges[friendID] = struct{}{}
	}
	m.friends[user.ID] = edges

	return m.userWithFriends(stored), nil
}

func (m *MemoryUserStore) FindByID(ctx context.Context, id int) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return m.userWithFriends(user), nil
}

// GetAll возвращает пользователей без списков друзей (ленивая загрузка).
func (m *MemoryUserStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, copyUser(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MemoryUserStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.users[id]
	return ok, nil
}

func (m *MemoryUserStore) ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryUserStore) ExistsByLogin(ctx context.Context, login string, excludeID int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Login == login && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryUserStore) AddFriend(ctx context.Context, userID, friendID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.friends[userID] == nil {
		m.friends[userID] = make(map[int]struct{})
	}
	m.friends[userID][friendID] = struct{}{}
	return nil
}

func (m *MemoryUserStore) RemoveFriend(ctx context.Context, userID, friendID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.friends[userID], friendID)
	return nil
}

func (m *MemoryUserStore) GetFriends(ctx context.Context, userID int) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.expandUsers(m.friends[userID]), nil
}

// GetCommonFriends возвращает пересечение множеств друзей двух пользователей,
// развернутое в полные объекты User.
func (m *MemoryUserStore) GetCommonFriends(ctx context.Context, userID, otherID int) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	common := make(map[int]struct{})
	for friendID := range m.friends[userID] {
		if _, ok := m.friends[otherID][friendID]; ok {
			common[friendID] = struct{}{}
		}
	}
	return m.expandUsers(common), nil
}

func (m *MemoryUserStore) expandUsers(ids map[int]struct{}) []*domain.User {
	users := make([]*domain.User, 0, len(ids))
	for id := range ids {
		if user, ok := m.users[id]; ok {
			users = append(users, copyUser(user))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (m *MemoryUserStore) userWithFriends(user *domain.User) *domain.User {
	clone := copyUser(user)
	edges := m.friends[user.ID]
	clone.Friends = make([]int, 0, len(edges))
	for friendID := range edges {
		clone.Friends = append(clone.Friends, friendID)
	}
	sort.Ints(clone.Friends)
	return clone
}

func (m *MemoryUserStore) nextID() int {
	maxID := 0
	for id := range m.users {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func copyUser(user *domain.User) *domain.User {
	clone := *user
	if user.Friends != nil {
		clone.Friends = make([]int, len(user.Friends))
		copy(clone.Friends, user.Friends)
	}
	return &clone
}
