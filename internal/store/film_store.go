package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/kuzo2004/java-filmorate/internal/domain"
)

var (
	ErrFilmNotFound = errors.New("film not found")
)

// FilmStore определяет интерфейс хранилища фильмов.
// Агрегат Film собирается из строки films, имени MPA и списка жанров.
type FilmStore interface {
	Add(ctx context.Context, film *domain.Film) (*domain.Film, error)
	Update(ctx context.Context, film *domain.Film) (*domain.Film, error)
	FindByID(ctx context.Context, id int) (*domain.Film, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
	GetAll(ctx context.Context) ([]*domain.Film, error)
	GetPopular(ctx context.Context, count int) ([]*domain.Film, error)
}

// MemoryFilmStore — потокобезопасное хранилище фильмов в памяти.
// Для ранжирования по популярности обращается к LikeStore за счетчиками лайков.
type MemoryFilmStore struct {
	mu    sync.RWMutex
	films map[int]*domain.Film
	likes LikeStore
}

func NewMemoryFilmStore(likes LikeStore) *MemoryFilmStore {
	return &MemoryFilmStore{
		films: make(map[int]*domain.Film),
		likes: likes,
	}
}

func (m *MemoryFilmStore) Add(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	film.ID = m.nextID()
	stored := copyFilm(film)
	sortGenres(stored.Genres)
	m.films[stored.ID] = stored

	return copyFilm(stored), nil
}

func (m *MemoryFilmStore) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.films[film.ID]; !ok {
		return nil, ErrFilmNotFound
	}

	// Полная замена, включая список жанров (отсутствующие жанры = пустой список).
	stored := copyFilm(film)
	sortGenres(stored.Genres)
	m.films[stored.ID] = stored

	return copyFilm(stored), nil
}

func (m *MemoryFilmStore) FindByID(ctx context.Context, id int) (*domain.Film, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	film, ok := m.films[id]
	if !ok {
		return nil, ErrFilmNotFound
	}
	return copyFilm(film), nil
}

func (m *MemoryFilmStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.films[id]
	return ok, nil
}

func (m *MemoryFilmStore) GetAll(ctx context.Context) ([]*domain.Film, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	films := make([]*domain.Film, 0, len(m.films))
	for _, film := range m.films {
		films = append(films, copyFilm(film))
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

// GetPopular возвращает не более count фильмов, отсортированных по убыванию
// числа лайков; при равенстве — по возрастанию id. Фильмы без лайков участвуют.
func (m *MemoryFilmStore) GetPopular(ctx context.Context, count int) ([]*domain.Film, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Счетчики снимаются под блокировкой фильмов, чтобы набор фильмов
	// и счетчики лайков были согласованы между собой.
	counts, err := m.likes.CountByFilm(ctx)
	if err != nil {
		return nil, err
	}

	films := make([]*domain.Film, 0, len(m.films))
	for _, film := range m.films {
		films = append(films, copyFilm(film))
	}
	sort.Slice(films, func(i, j int) bool {
		ci, cj := counts[films[i].ID], counts[films[j].ID]
		if ci != cj {
			return ci > cj
		}
		return films[i].ID < films[j].ID
	})

	if len(films) > count {
		films = films[:count]
	}
	return films, nil
}

func (m *MemoryFilmStore) nextID() int {
	maxID := 0
	for id := range m.films {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func copyFilm(film *domain.Film) *domain.Film {
	clone := *film
	clone.Genres = make([]domain.Genre, len(film.Genres))
	copy(clone.Genres, film.Genres)
	return &clone
}

func sortGenres(genres []domain.Genre) {
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
}
