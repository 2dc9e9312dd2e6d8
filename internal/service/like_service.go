package service

import (
	"context"
	"log/slog"

	"github.com/kuzo2004/java-filmorate/internal/store"
)

// LikeService управляет отношением лайков (film x user).
// Существование фильма и пользователя проверяет вызывающий FilmService.
type LikeService struct {
	likes  store.LikeStore
	logger *slog.Logger
}

func NewLikeService(likes store.LikeStore, logger *slog.Logger) *LikeService {
	return &LikeService{likes: likes, logger: logger}
}

func (s *LikeService) IsFilmLikedByUser(ctx context.Context, filmID, userID int) (bool, error) {
	return s.likes.Exists(ctx, filmID, userID)
}

// AddLike отклоняет повторный лайк той же пары как DuplicateError.
func (s *LikeService) AddLike(ctx context.Context, filmID, userID int) error {
	liked, err := s.likes.Exists(ctx, filmID, userID)
	if err != nil {
		return err
	}
	if liked {
		s.logger.DebugContext(ctx, "Duplicate like rejected",
			slog.Int("filmID", filmID), slog.Int("userID", userID))
		return NewDuplicateError("user %d has already liked film %d", userID, filmID)
	}
	return s.likes.Add(ctx, filmID, userID)
}

// RemoveLike несуществующего лайка — тихий no-op.
func (s *LikeService) RemoveLike(ctx context.Context, filmID, userID int) error {
	liked, err := s.likes.Exists(ctx, filmID, userID)
	if err != nil {
		return err
	}
	if !liked {
		s.logger.DebugContext(ctx, "Like not found, nothing to remove",
			slog.Int("filmID", filmID), slog.Int("userID", userID))
		return nil
	}
	return s.likes.Remove(ctx, filmID, userID)
}
