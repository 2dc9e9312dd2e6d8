package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kuzo2004/java-filmorate/internal/domain"
	"github.com/kuzo2004/java-filmorate/internal/store"
)

// GenreService — лукапы по справочнику жанров с трансляцией
// отсутствия записи в NotFoundError.
type GenreService struct {
	genres store.GenreStore
	logger *slog.Logger
}

func NewGenreService(genres store.GenreStore, logger *slog.Logger) *GenreService {
	return &GenreService{genres: genres, logger: logger}
}

func (s *GenreService) GetAll(ctx context.Context) ([]domain.Genre, error) {
	return s.genres.GetAll(ctx)
}

func (s *GenreService) FindByID(ctx context.Context, id int) (domain.Genre, error) {
	genre, err := s.genres.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrGenreNotFound) {
			return domain.Genre{}, NewNotFoundError("genre with id %d not found", id)
		}
		return domain.Genre{}, err
	}
	return genre, nil
}
