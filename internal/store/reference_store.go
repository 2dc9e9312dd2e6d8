package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/kuzo2004/java-filmorate/internal/domain"
)

var (
	ErrGenreNotFound = errors.New("genre not found")
	ErrMpaNotFound   = errors.New("mpa rating not found")
)

// GenreStore — справочник жанров (read-only для приложения).
type GenreStore interface {
	GetAll(ctx context.Context) ([]domain.Genre, error)
	FindByID(ctx context.Context, id int) (domain.Genre, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
}

// MpaStore — справочник рейтингов MPA (read-only для приложения).
type MpaStore interface {
	GetAll(ctx context.Context) ([]domain.Mpa, error)
	FindByID(ctx context.Context, id int) (domain.Mpa, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
}

// DefaultGenres — предзаполненный справочник жанров.
func DefaultGenres() []domain.Genre {
	return []domain.Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}
}

// DefaultMpa — предзаполненный справочник рейтингов MPA.
func DefaultMpa() []domain.Mpa {
	return []domain.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
}

// MemoryGenreStore — справочник жанров в памяти, заполняется при создании
// и далее не изменяется.
type MemoryGenreStore struct {
	mu     sync.RWMutex
	genres map[int]domain.Genre
}

func NewMemoryGenreStore() *MemoryGenreStore {
	genres := make(map[int]domain.Genre)
	for _, g := range DefaultGenres() {
		genres[g.ID] = g
	}
	return &MemoryGenreStore{genres: genres}
}

func (m *MemoryGenreStore) GetAll(ctx context.Context) ([]domain.Genre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	genres := make([]domain.Genre, 0, len(m.genres))
	for _, g := range m.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

func (m *MemoryGenreStore) FindByID(ctx context.Context, id int) (domain.Genre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	genre, ok := m.genres[id]
	if !ok {
		return domain.Genre{}, ErrGenreNotFound
	}
	return genre, nil
}

func (m *MemoryGenreStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.genres[id]
	return ok, nil
}

// MemoryMpaStore — справочник рейтингов MPA в памяти.
type MemoryMpaStore struct {
	mu  sync.RWMutex
	mpa map[int]domain.Mpa
}

func NewMemoryMpaStore() *MemoryMpaStore {
	mpa := make(map[int]domain.Mpa)
	for _, m := range DefaultMpa() {
		mpa[m.ID] = m
	}
	return &MemoryMpaStore{mpa: mpa}
}

func (m *MemoryMpaStore) GetAll(ctx context.Context) ([]domain.Mpa, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ratings := make([]domain.Mpa, 0, len(m.mpa))
	for _, r := range m.mpa {
		ratings = append(ratings, r)
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].ID < ratings[j].ID })
	return ratings, nil
}

func (m *MemoryMpaStore) FindByID(ctx context.Context, id int) (domain.Mpa, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rating, ok := m.mpa[id]
	if !ok {
		return domain.Mpa{}, ErrMpaNotFound
	}
	return rating, nil
}

func (m *MemoryMpaStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.mpa[id]
	return ok, nil
}
