package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresLikeStore реализует LikeStore для PostgreSQL.
// Уникальность пары (film_id, user_id) дополнительно гарантируется
// составным первичным ключом таблицы likes.
type PostgresLikeStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresLikeStore(db *sqlx.DB, logger *slog.Logger) (*PostgresLikeStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresLikeStore{db: db, logger: logger}, nil
}

func (s *PostgresLikeStore) Exists(ctx context.Context, filmID, userID int) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT COUNT(*) > 0 FROM likes WHERE film_id = $1 AND user_id = $2`, filmID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}
	return exists, nil
}

func (s *PostgresLikeStore) Add(ctx context.Context, filmID, userID int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO likes (film_id, user_id) VALUES ($1, $2)`, filmID, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "Duplicate like rejected by DB constraint",
				slog.Int("filmID", filmID), slog.Int("userID", userID))
			return ErrLikeExists
		}
		s.logger.ErrorContext(ctx, "Failed to insert like",
			slog.Int("filmID", filmID), slog.Int("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

func (s *PostgresLikeStore) Remove(ctx context.Context, filmID, userID int) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM likes WHERE film_id = $1 AND user_id = $2`, filmID, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete like",
			slog.Int("filmID", filmID), slog.Int("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

func (s *PostgresLikeStore) CountByFilm(ctx context.Context) (map[int]int, error) {
	rows, err := s.db.QueryxContext(ctx,
		`SELECT film_id, COUNT(user_id) FROM likes GROUP BY film_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var filmID, count int
		if err := rows.Scan(&filmID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan like count: %w", err)
		}
		counts[filmID] = count
	}
	return counts, rows.Err()
}
