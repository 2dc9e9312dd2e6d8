package database

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/kuzo2004/java-filmorate/internal/config"
)

// NewPostgres открывает соединение с PostgreSQL, накатывает схему
// и заполняет справочные таблицы.
func NewPostgres(cfg config.DBConfig, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	logger.Info("Connected to PostgreSQL", slog.String("db", cfg.DBName))

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS mpa (
			id SERIAL PRIMARY KEY,
			name VARCHAR(10) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS genres (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS films (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description VARCHAR(200) DEFAULT '',
			release_date DATE NOT NULL,
			duration INTEGER NOT NULL CHECK (duration > 0),
			mpa_id INTEGER NOT NULL REFERENCES mpa(id)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			login VARCHAR(255) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			birthday DATE
		)`,
		`CREATE TABLE IF NOT EXISTS film_genres (
			film_id INTEGER NOT NULL REFERENCES films(id) ON DELETE CASCADE,
			genre_id INTEGER NOT NULL REFERENCES genres(id),
			PRIMARY KEY (film_id, genre_id)
		)`,
		`CREATE TABLE IF NOT EXISTS friends (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			friend_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, friend_id)
		)`,
		`CREATE TABLE IF NOT EXISTS likes (
			film_id INTEGER NOT NULL REFERENCES films(id) ON DELETE CASCADE,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			PRIMARY KEY (film_id, user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_likes_film_id ON likes(film_id)`,
		`CREATE INDEX IF NOT EXISTS idx_friends_user_id ON friends(user_id)`,
		// Справочники предзаполняются один раз и приложением не изменяются.
		`INSERT INTO mpa (id, name) VALUES
			(1, 'G'), (2, 'PG'), (3, 'PG-13'), (4, 'R'), (5, 'NC-17')
			ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO genres (id, name) VALUES
			(1, 'Комедия'), (2, 'Драма'), (3, 'Мультфильм'),
			(4, 'Триллер'), (5, 'Документальный'), (6, 'Боевик')
			ON CONFLICT (id) DO NOTHING`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	slog.Info("Database migrations completed")
	return nil
}
