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

// PostgresUserStore реализует UserStore для PostgreSQL.
type PostgresUserStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresUserStore(db *sqlx.DB, logger *slog.Logger) (*PostgresUserStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresUserStore{db: db, logger: logger}, nil
}

func (s *PostgresUserStore) Add(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (email, login, name, birthday)
              VALUES ($1, $2, $3, $4)
              RETURNING id`

	s.logger.DebugContext(ctx, "Executing Add user query", slog.String("login", user.Login))
	err := s.db.QueryRowxContext(ctx, query,
		user.Email, user.Login, user.Name, user.Birthday,
	).Scan(&user.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to insert user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	s.logger.InfoContext(ctx, "User added", slog.Int("userID", user.ID))
	return user, nil
}

func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `UPDATE users
              SET email = $1, login = $2, name = $3, birthday = $4
              WHERE id = $5`

	result, err := s.db.ExecContext(ctx, query,
		user.Email, user.Login, user.Name, user.Birthday, user.ID,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update user", slog.Int("userID", user.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	// Полная замена направленных связей дружбы из пришедшего объекта.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM friends WHERE user_id = $1`, user.ID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete friend relations", slog.Int("userID", user.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to delete friend relations: %w", err)
	}
	for _, friendID := range user.Friends {
		if err := s.AddFriend(ctx, user.ID, friendID); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "User updated", slog.Int("userID", user.ID))
	return user, nil
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT id, email, login, name, birthday FROM users WHERE id = $1`

	var user domain.User
	if err := s.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user by ID", slog.Int("userID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	// Подгружаем id друзей (сами объекты друзей не разворачиваем).
	friendIDs := []int{}
	if err := s.db.SelectContext(ctx, &friendIDs,
		`SELECT friend_id FROM friends WHERE user_id = $1 ORDER BY friend_id`, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to load friend ids", slog.Int("userID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load friend ids: %w", err)
	}
	user.Friends = friendIDs

	return &user, nil
}

// GetAll возвращает пользователей без списков друзей (ленивая загрузка).
func (s *PostgresUserStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	if err := s.db.SelectContext(ctx, &users, `SELECT id, email, login, name, birthday FROM users ORDER BY id`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

func (s *PostgresUserStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT COUNT(*) > 0 FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func (s *PostgresUserStore) ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT COUNT(*) > 0 FROM users WHERE email = $1 AND id <> $2`, email, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return exists, nil
}

func (s *PostgresUserStore) ExistsByLogin(ctx context.Context, login string, excludeID int) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT COUNT(*) > 0 FROM users WHERE login = $1 AND id <> $2`, login, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check login uniqueness: %w", err)
	}
	return exists, nil
}

func (s *PostgresUserStore) AddFriend(ctx context.Context, userID, friendID int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO friends (user_id, friend_id) VALUES ($1, $2)`, userID, friendID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to insert friend relation",
			slog.Int("userID", userID), slog.Int("friendID", friendID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to insert friend relation: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) RemoveFriend(ctx context.Context, userID, friendID int) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM friends WHERE user_id = $1 AND friend_id = $2`, userID, friendID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete friend relation",
			slog.Int("userID", userID), slog.Int("friendID", friendID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete friend relation: %w", err)
	}
	return nil
}

// GetFriends возвращает всех пользователей, на которых указывает userID
// (направленные связи, без подгрузки их собственных друзей).
func (s *PostgresUserStore) GetFriends(ctx context.Context, userID int) ([]*domain.User, error) {
	query := `SELECT u.id, u.email, u.login, u.name, u.birthday
              FROM users u
              JOIN friends f ON u.id = f.friend_id
              WHERE f.user_id = $1
              ORDER BY u.id`

	friends := []*domain.User{}
	if err := s.db.SelectContext(ctx, &friends, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list friends", slog.Int("userID", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}

// GetCommonFriends возвращает пересечение друзей двух пользователей,
// развернутое в полные объекты User.
func (s *PostgresUserStore) GetCommonFriends(ctx context.Context, userID, otherID int) ([]*domain.User, error) {
	query := `SELECT u.id, u.email, u.login, u.name, u.birthday
              FROM users u
              JOIN friends f1 ON u.id = f1.friend_id
              JOIN friends f2 ON u.id = f2.friend_id
              WHERE f1.user_id = $1 AND f2.user_id = $2
              ORDER BY u.id`

	common := []*domain.User{}
	if err := s.db.SelectContext(ctx, &common, query, userID, otherID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list common friends",
			slog.Int("userID", userID), slog.Int("otherID", otherID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list common friends: %w", err)
	}
	return common, nil
}
