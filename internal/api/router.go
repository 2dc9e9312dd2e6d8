package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter собирает маршруты сервиса под префиксом /api.
func NewRouter(films *FilmHandler, users *UserHandler, refs *ReferenceHandler, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)
	router.Use(LoggingMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))

	apiRouter := router.PathPrefix("/api").Subrouter()

	// Фильмы
	filmsRouter := apiRouter.PathPrefix("/films").Subrouter()
	filmsRouter.HandleFunc("", films.CreateFilm).Methods(http.MethodPost)
	filmsRouter.HandleFunc("", films.UpdateFilm).Methods(http.MethodPut)
	filmsRouter.HandleFunc("", films.GetFilms).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/popular", films.GetPopularFilms).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/{id:[0-9]+}", films.GetFilmByID).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/{id:[0-9]+}/like/{userId:[0-9]+}", films.AddLike).Methods(http.MethodPut)
	filmsRouter.HandleFunc("/{id:[0-9]+}/like/{userId:[0-9]+}", films.RemoveLike).Methods(http.MethodDelete)

	// Пользователи
	usersRouter := apiRouter.PathPrefix("/users").Subrouter()
	usersRouter.HandleFunc("", users.CreateUser).Methods(http.MethodPost)
	usersRouter.HandleFunc("", users.UpdateUser).Methods(http.MethodPut)
	usersRouter.HandleFunc("", users.GetUsers).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id:[0-9]+}", users.GetUserByID).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id:[0-9]+}/friends", users.GetFriends).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id:[0-9]+}/friends/common/{otherId:[0-9]+}", users.GetCommonFriends).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id:[0-9]+}/friends/{friendId:[0-9]+}", users.AddFriend).Methods(http.MethodPut)
	usersRouter.HandleFunc("/{id:[0-9]+}/friends/{friendId:[0-9]+}", users.RemoveFriend).Methods(http.MethodDelete)

	// Справочники
	apiRouter.HandleFunc("/genres", refs.GetGenres).Methods(http.MethodGet)
	apiRouter.HandleFunc("/genres/{id:[0-9]+}", refs.GetGenreByID).Methods(http.MethodGet)
	apiRouter.HandleFunc("/mpa", refs.GetAllMpa).Methods(http.MethodGet)
	apiRouter.HandleFunc("/mpa/{id:[0-9]+}", refs.GetMpaByID).Methods(http.MethodGet)

	return router
}
