package service

import (
	"io"
	"log/slog"

	"github.com/kuzo2004/java-filmorate/internal/store"
)

// testEnv собирает полный сервисный слой над хранилищами в памяти.
type testEnv struct {
	films  *FilmService
	users  *UserService
	genres *GenreService
	mpa    *MpaService
	likes  *LikeService
}

func newTestEnv() *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	likeStore := store.NewMemoryLikeStore()
	users := NewUserService(store.NewMemoryUserStore(), logger)
	mpa := NewMpaService(store.NewMemoryMpaStore(), logger)
	genres := NewGenreService(store.NewMemoryGenreStore(), logger)
	likes := NewLikeService(likeStore, logger)
	films := NewFilmService(store.NewMemoryFilmStore(likeStore), users, mpa, genres, likes, logger)

	return &testEnv{films: films, users: users, genres: genres, mpa: mpa, likes: likes}
}
