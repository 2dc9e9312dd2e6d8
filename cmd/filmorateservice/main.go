package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kuzo2004/java-filmorate/internal/api"
	"github.com/kuzo2004/java-filmorate/internal/config"
	"github.com/kuzo2004/java-filmorate/internal/database"
	"github.com/kuzo2004/java-filmorate/internal/service"
	"github.com/kuzo2004/java-filmorate/internal/store"
)

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// buildStores собирает хранилища для выбранного бэкенда.
func buildStores(cfg *config.Config, logger *slog.Logger) (films store.FilmStore, users store.UserStore, likes store.LikeStore, genres store.GenreStore, mpa store.MpaStore, cleanup func(), err error) {
	if cfg.StorageBackend == config.BackendMemory {
		likeStore := store.NewMemoryLikeStore()
		return store.NewMemoryFilmStore(likeStore),
			store.NewMemoryUserStore(),
			likeStore,
			store.NewMemoryGenreStore(),
			store.NewMemoryMpaStore(),
			func() {},
			nil
	}

	db, err := database.NewPostgres(cfg.DB, logger)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}
	cleanup = func() {
		logger.Info("Closing PostgreSQL database connection...")
		if err := db.Close(); err != nil {
			logger.Error("Failed to close PostgreSQL connection", slog.String("error", err.Error()))
		}
	}

	filmStore, err := store.NewPostgresFilmStore(db, logger)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, nil, nil, err
	}
	userStore, err := store.NewPostgresUserStore(db, logger)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, nil, nil, err
	}
	likeStore, err := store.NewPostgresLikeStore(db, logger)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, nil, nil, err
	}
	genreStore, err := store.NewPostgresGenreStore(db, logger)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, nil, nil, err
	}
	mpaStore, err := store.NewPostgresMpaStore(db, logger)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, nil, nil, err
	}
	return filmStore, userStore, likeStore, genreStore, mpaStore, cleanup, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	validate := validator.New()

	films, users, likes, genres, mpa, cleanup, err := buildStores(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()
	logger.Info("Storage initialized", slog.String("backend", cfg.StorageBackend))

	// Сервисы
	userService := service.NewUserService(users, logger)
	mpaService := service.NewMpaService(mpa, logger)
	genreService := service.NewGenreService(genres, logger)
	likeService := service.NewLikeService(likes, logger)
	filmService := service.NewFilmService(films, userService, mpaService, genreService, likeService, logger)

	// HTTP-обработчики и маршрутизация
	filmHandler := api.NewFilmHandler(filmService, logger, validate)
	userHandler := api.NewUserHandler(userService, logger, validate)
	refHandler := api.NewReferenceHandler(genreService, mpaService, logger)
	router := api.NewRouter(filmHandler, userHandler, refHandler, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}
}
