package store

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrLikeExists — попытка вставить дубликат пары (film, user).
	ErrLikeExists = errors.New("like already exists")
)

// LikeStore определяет интерфейс хранилища лайков (отношение film x user,
// уникальное по паре).
type LikeStore interface {
	Exists(ctx context.Context, filmID, userID int) (bool, error)
	Add(ctx context.Context, filmID, userID int) error
	Remove(ctx context.Context, filmID, userID int) error
	// CountByFilm возвращает число лайков по каждому фильму одним проходом.
	CountByFilm(ctx context.Context) (map[int]int, error)
}

// MemoryLikeStore — потокобезопасное хранилище лайков в памяти.
type MemoryLikeStore struct {
	mu    sync.RWMutex
	likes map[int]map[int]struct{} // film -> множество пользователей
}

func NewMemoryLikeStore() *MemoryLikeStore {
	return &MemoryLikeStore{likes: make(map[int]map[int]struct{})}
}

func (m *MemoryLikeStore) Exists(ctx context.Context, filmID, userID int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.likes[filmID][userID]
	return ok, nil
}

func (m *MemoryLikeStore) Add(ctx context.Context, filmID, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.likes[filmID][userID]; ok {
		return ErrLikeExists
	}
	if m.likes[filmID] == nil {
		m.likes[filmID] = make(map[int]struct{})
	}
	m.likes[filmID][userID] = struct{}{}
	return nil
}

func (m *MemoryLikeStore) Remove(ctx context.Context, filmID, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.likes[filmID], userID)
	return nil
}

func (m *MemoryLikeStore) CountByFilm(ctx context.Context) (map[int]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[int]int, len(m.likes))
	for filmID, users := range m.likes {
		counts[filmID] = len(users)
	}
	return counts, nil
}
