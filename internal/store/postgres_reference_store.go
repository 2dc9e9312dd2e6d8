package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/kuzo2004/java-filmorate/internal/domain"
)

// PostgresGenreStore реализует GenreStore для PostgreSQL.
type PostgresGenreStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresGenreStore(db *sqlx.DB, logger *slog.Logger) (*PostgresGenreStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresGenreStore{db: db, logger: logger}, nil
}

func (s *PostgresGenreStore) GetAll(ctx context.Context) ([]domain.Genre, error) {
	genres := []domain.Genre{}
	if err := s.db.SelectContext(ctx, &genres, `SELECT id, name FROM genres ORDER BY id`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list genres", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *PostgresGenreStore) FindByID(ctx context.Context, id int) (domain.Genre, error) {
	var genre domain.Genre
	if err := s.db.GetContext(ctx, &genre, `SELECT id, name FROM genres WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Genre{}, ErrGenreNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get genre by ID", slog.Int("genreID", id), slog.String("error", err.Error()))
		return domain.Genre{}, fmt.Errorf("failed to get genre by ID: %w", err)
	}
	return genre, nil
}

func (s *PostgresGenreStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT COUNT(*) > 0 FROM genres WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check genre existence: %w", err)
	}
	return exists, nil
}

// PostgresMpaStore реализует MpaStore для PostgreSQL.
type PostgresMpaStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresMpaStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMpaStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresMpaStore{db: db, logger: logger}, nil
}

func (s *PostgresMpaStore) GetAll(ctx context.Context) ([]domain.Mpa, error) {
	ratings := []domain.Mpa{}
	if err := s.db.SelectContext(ctx, &ratings, `SELECT id, name FROM mpa ORDER BY id`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list mpa ratings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list mpa ratings: %w", err)
	}
	return ratings, nil
}

func (s *PostgresMpaStore) FindByID(ctx context.Context, id int) (domain.Mpa, error) {
	var rating domain.Mpa
	if err := s.db.GetContext(ctx, &rating, `SELECT id, name FROM mpa WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Mpa{}, ErrMpaNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get mpa rating by ID", slog.Int("mpaID", id), slog.String("error", err.Error()))
		return domain.Mpa{}, fmt.Errorf("failed to get mpa rating by ID: %w", err)
	}
	return rating, nil
}

func (s *PostgresMpaStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT COUNT(*) > 0 FROM mpa WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check mpa existence: %w", err)
	}
	return exists, nil
}
