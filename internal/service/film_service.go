package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kuzo2004/java-filmorate/internal/domain"
	"github.com/kuzo2004/java-filmorate/internal/store"
)

// FilmService оркестрирует хранилище фильмов, справочники и лайки:
// проверяет MPA и жанры по справочникам, следит за существованием
// фильмов и пользователей, ранжирует по популярности.
type FilmService struct {
	films  store.FilmStore
	users  *UserService
	mpa    *MpaService
	genres *GenreService
	likes  *LikeService
	logger *slog.Logger
}

func NewFilmService(
	films store.FilmStore,
	users *UserService,
	mpa *MpaService,
	genres *GenreService,
	likes *LikeService,
	logger *slog.Logger,
) *FilmService {
	return &FilmService{
		films:  films,
		users:  users,
		mpa:    mpa,
		genres: genres,
		likes:  likes,
		logger: logger,
	}
}

func (s *FilmService) Add(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	// Клиент присылает только id рейтинга: подставляем запись справочника с именем.
	mpa, err := s.mpa.FindByID(ctx, film.Mpa.ID)
	if err != nil {
		return nil, err
	}
	film.Mpa = mpa

	genres, err := s.resolveGenres(ctx, film.Genres)
	if err != nil {
		return nil, err
	}
	film.Genres = genres

	added, err := s.films.Add(ctx, film)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "Film added", slog.Int("filmID", added.ID))
	return added, nil
}

func (s *FilmService) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	if err := s.ValidateExists(ctx, film.ID); err != nil {
		return nil, err
	}

	mpa, err := s.mpa.FindByID(ctx, film.Mpa.ID)
	if err != nil {
		return nil, err
	}
	film.Mpa = mpa

	// Полный update: непереданные жанры означают пустой список.
	genres, err := s.resolveGenres(ctx, film.Genres)
	if err != nil {
		return nil, err
	}
	film.Genres = genres

	updated, err := s.films.Update(ctx, film)
	if err != nil {
		if errors.Is(err, store.ErrFilmNotFound) {
			return nil, NewNotFoundError("film with id %d not found", film.ID)
		}
		return nil, err
	}
	s.logger.DebugContext(ctx, "Film fully updated", slog.Int("filmID", updated.ID))
	return updated, nil
}

func (s *FilmService) FindByID(ctx context.Context, id int) (*domain.Film, error) {
	film, err := s.films.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrFilmNotFound) {
			return nil, NewNotFoundError("film with id %d not found", id)
		}
		return nil, err
	}
	return film, nil
}

func (s *FilmService) GetAll(ctx context.Context) ([]*domain.Film, error) {
	return s.films.GetAll(ctx)
}

// ValidateExists возвращает NotFoundError, если фильма с таким id нет.
func (s *FilmService) ValidateExists(ctx context.Context, id int) error {
	exists, err := s.films.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return NewNotFoundError("film with id %d not found", id)
	}
	return nil
}

func (s *FilmService) AddLike(ctx context.Context, filmID, userID int) error {
	if err := s.ValidateExists(ctx, filmID); err != nil {
		return err
	}
	if err := s.users.ValidateExists(ctx, userID); err != nil {
		return err
	}
	if err := s.likes.AddLike(ctx, filmID, userID); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Like added", slog.Int("filmID", filmID), slog.Int("userID", userID))
	return nil
}

func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int) error {
	if err := s.ValidateExists(ctx, filmID); err != nil {
		return err
	}
	if err := s.users.ValidateExists(ctx, userID); err != nil {
		return err
	}
	if err := s.likes.RemoveLike(ctx, filmID, userID); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Like removed", slog.Int("filmID", filmID), slog.Int("userID", userID))
	return nil
}

func (s *FilmService) GetPopular(ctx context.Context, count int) ([]*domain.Film, error) {
	if count <= 0 {
		return nil, domain.NewValidationError("count", "must be positive")
	}
	return s.films.GetPopular(ctx, count)
}

// resolveGenres убирает дубликаты id и сверяет каждый жанр со справочником,
// подставляя имена. Неизвестный жанр — NotFoundError.
func (s *FilmService) resolveGenres(ctx context.Context, genres []domain.Genre) ([]domain.Genre, error) {
	resolved := make([]domain.Genre, 0, len(genres))
	seen := make(map[int]struct{}, len(genres))
	for _, genre := range genres {
		if _, ok := seen[genre.ID]; ok {
			continue
		}
		seen[genre.ID] = struct{}{}

		full, err := s.genres.FindByID(ctx, genre.ID)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, full)
	}
	return resolved, nil
}
