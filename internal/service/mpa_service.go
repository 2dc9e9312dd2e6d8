package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kuzo2004/java-filmorate/internal/domain"
	"github.com/kuzo2004/java-filmorate/internal/store"
)

// MpaService — лукапы по справочнику рейтингов MPA с трансляцией
// отсутствия записи в NotFoundError.
type MpaService struct {
	mpa    store.MpaStore
	logger *slog.Logger
}

func NewMpaService(mpa store.MpaStore, logger *slog.Logger) *MpaService {
	return &MpaService{mpa: mpa, logger: logger}
}

func (s *MpaService) GetAll(ctx context.Context) ([]domain.Mpa, error) {
	return s.mpa.GetAll(ctx)
}

func (s *MpaService) FindByID(ctx context.Context, id int) (domain.Mpa, error) {
	rating, err := s.mpa.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrMpaNotFound) {
			return domain.Mpa{}, NewNotFoundError("MPA rating with id %d not found", id)
		}
		return domain.Mpa{}, err
	}
	return rating, nil
}
