package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kuzo2004/java-filmorate/internal/domain"
)

// PostgresFilmStore реализует FilmStore для PostgreSQL.
type PostgresFilmStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresFilmStore(db *sqlx.DB, logger *slog.Logger) (*PostgresFilmStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresFilmStore{db: db, logger: logger}, nil
}

// filmRow — строка выборки films с присоединенным именем MPA.
type filmRow struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	ReleaseDate time.Time `db:"release_date"`
	Duration    int       `db:"duration"`
	MpaID       int       `db:"mpa_id"`
	MpaName     string    `db:"mpa_name"`
}

func (r filmRow) toFilm() *domain.Film {
	return &domain.Film{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: domain.NewDate(r.ReleaseDate.Year(), r.ReleaseDate.Month(), r.ReleaseDate.Day()),
		Duration:    r.Duration,
		Mpa:         domain.Mpa{ID: r.MpaID, Name: r.MpaName},
		Genres:      []domain.Genre{},
	}
}

// filmGenreRow — строка выборки film_genres с именем жанра из справочника.
type filmGenreRow struct {
	FilmID    int    `db:"film_id"`
	GenreID   int    `db:"genre_id"`
	GenreName string `db:"genre_name"`
}

func (s *PostgresFilmStore) Add(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	query := `INSERT INTO films (name, description, release_date, duration, mpa_id)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id`

	s.logger.DebugContext(ctx, "Executing Add film query", slog.String("name", film.Name))
	err := s.db.QueryRowxContext(ctx, query,
		film.Name, film.Description, film.ReleaseDate, film.Duration, film.Mpa.ID,
	).Scan(&film.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to insert film", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to insert film: %w", err)
	}

	if err := s.insertGenreRelations(ctx, film.ID, film.Genres); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Film added", slog.Int("filmID", film.ID))
	return film, nil
}

func (s *PostgresFilmStore) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	query := `UPDATE films
              SET name = $1, description = $2, release_date = $3, duration = $4, mpa_id = $5
              WHERE id = $6`

	result, err := s.db.ExecContext(ctx, query,
		film.Name, film.Description, film.ReleaseDate, film.Duration, film.Mpa.ID, film.ID,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update film", slog.Int("filmID", film.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update film: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, ErrFilmNotFound
	}

	// Полная замена набора жанров: удалить старые связи, вставить новые.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM film_genres WHERE film_id = $1`, film.ID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete film genre relations", slog.Int("filmID", film.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to delete film genre relations: %w", err)
	}
	if err := s.insertGenreRelations(ctx, film.ID, film.Genres); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Film updated", slog.Int("filmID", film.ID))
	return film, nil
}

func (s *PostgresFilmStore) FindByID(ctx context.Context, id int) (*domain.Film, error) {
	query := `SELECT f.id, f.name, f.description, f.release_date, f.duration, f.mpa_id, m.name AS mpa_name
              FROM films f
              JOIN mpa m ON f.mpa_id = m.id
              WHERE f.id = $1`

	var row filmRow
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get film by ID", slog.Int("filmID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get film by ID: %w", err)
	}

	film := row.toFilm()

	genresQuery := `SELECT g.id AS genre_id, g.name AS genre_name, fg.film_id
                    FROM genres g
                    JOIN film_genres fg ON g.id = fg.genre_id
                    WHERE fg.film_id = $1
                    ORDER BY g.id`
	var genreRows []filmGenreRow
	if err := s.db.SelectContext(ctx, &genreRows, genresQuery, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to load film genres", slog.Int("filmID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load film genres: %w", err)
	}
	for _, gr := range genreRows {
		film.Genres = append(film.Genres, domain.Genre{ID: gr.GenreID, Name: gr.GenreName})
	}

	return film, nil
}

func (s *PostgresFilmStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT COUNT(*) > 0 FROM films WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check film existence: %w", err)
	}
	return exists, nil
}

// GetAll загружает все фильмы одним запросом и все связи фильм-жанр вторым,
// после чего мержит их в памяти — без N+1 запросов.
func (s *PostgresFilmStore) GetAll(ctx context.Context) ([]*domain.Film, error) {
	filmsQuery := `SELECT f.id, f.name, f.description, f.release_date, f.duration, f.mpa_id, m.name AS mpa_name
                   FROM films f
                   JOIN mpa m ON f.mpa_id = m.id
                   ORDER BY f.id`
	var rows []filmRow
	if err := s.db.SelectContext(ctx, &rows, filmsQuery); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list films", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	if len(rows) == 0 {
		return []*domain.Film{}, nil
	}

	films := make([]*domain.Film, 0, len(rows))
	for _, row := range rows {
		films = append(films, row.toFilm())
	}

	genresQuery := `SELECT fg.film_id, g.id AS genre_id, g.name AS genre_name
                    FROM film_genres fg
                    JOIN genres g ON fg.genre_id = g.id
                    ORDER BY fg.film_id, g.id`
	var genreRows []filmGenreRow
	if err := s.db.SelectContext(ctx, &genreRows, genresQuery); err != nil {
		s.logger.ErrorContext(ctx, "Failed to load genre relations", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load genre relations: %w", err)
	}

	attachGenres(films, genreRows)
	return films, nil
}

// GetPopular ранжирует фильмы по убыванию числа лайков (фильмы без лайков
// участвуют с нулем), при равенстве — по возрастанию id.
func (s *PostgresFilmStore) GetPopular(ctx context.Context, count int) ([]*domain.Film, error) {
	query := `SELECT f.id, f.name, f.description, f.release_date, f.duration, f.mpa_id, m.name AS mpa_name
              FROM films f
              JOIN mpa m ON f.mpa_id = m.id
              LEFT JOIN likes lk ON f.id = lk.film_id
              GROUP BY f.id, m.name
              ORDER BY COUNT(lk.user_id) DESC, f.id
              LIMIT $1`

	var rows []filmRow
	if err := s.db.SelectContext(ctx, &rows, query, count); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list popular films", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list popular films: %w", err)
	}
	if len(rows) == 0 {
		return []*domain.Film{}, nil
	}

	films := make([]*domain.Film, 0, len(rows))
	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		films = append(films, row.toFilm())
		ids = append(ids, row.ID)
	}

	genresQuery, args, err := sqlx.In(`SELECT fg.film_id, g.id AS genre_id, g.name AS genre_name
                                       FROM film_genres fg
                                       JOIN genres g ON fg.genre_id = g.id
                                       WHERE fg.film_id IN (?)
                                       ORDER BY fg.film_id, g.id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build genre relations query: %w", err)
	}
	var genreRows []filmGenreRow
	if err := s.db.SelectContext(ctx, &genreRows, s.db.Rebind(genresQuery), args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to load genre relations", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load genre relations: %w", err)
	}

	attachGenres(films, genreRows)
	return films, nil
}

func (s *PostgresFilmStore) insertGenreRelations(ctx context.Context, filmID int, genres []domain.Genre) error {
	// Существование жанров уже проверено на уровне сервиса.
	query := `INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2)`
	for _, genre := range genres {
		if _, err := s.db.ExecContext(ctx, query, filmID, genre.ID); err != nil {
			s.logger.ErrorContext(ctx, "Failed to insert film genre relation",
				slog.Int("filmID", filmID), slog.Int("genreID", genre.ID), slog.String("error", err.Error()))
			return fmt.Errorf("failed to insert film genre relation: %w", err)
		}
	}
	return nil
}

// attachGenres раскладывает пакетно загруженные связи по фильмам (merge по ключу film_id).
func attachGenres(films []*domain.Film, genreRows []filmGenreRow) {
	genresByFilm := make(map[int][]domain.Genre, len(films))
	for _, gr := range genreRows {
		genresByFilm[gr.FilmID] = append(genresByFilm[gr.FilmID], domain.Genre{ID: gr.GenreID, Name: gr.GenreName})
	}
	for _, film := range films {
		if genres, ok := genresByFilm[film.ID]; ok {
			film.Genres = genres
		}
	}
}
