package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/kuzo2004/java-filmorate/internal/domain"
	"github.com/kuzo2004/java-filmorate/internal/service"
)

const defaultPopularCount = 10

// FilmHandler содержит зависимости HTTP-обработчиков фильмов.
type FilmHandler struct {
	films     *service.FilmService
	logger    *slog.Logger
	validator *validator.Validate
}

func NewFilmHandler(films *service.FilmService, logger *slog.Logger, v *validator.Validate) *FilmHandler {
	return &FilmHandler{films: films, logger: logger, validator: v}
}

// CreateFilm обрабатывает POST /api/films.
func (h *FilmHandler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var film domain.Film
	if err := json.NewDecoder(r.Body).Decode(&film); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode film payload", slog.String("error", err.Error()))
		respondError(w, r, h.logger, http.StatusBadRequest, "invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := film.Validate(h.validator); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	added, err := h.films.Add(ctx, &film)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusCreated, added)
}

// UpdateFilm обрабатывает PUT /api/films (полная замена, включая жанры).
func (h *FilmHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var film domain.Film
	if err := json.NewDecoder(r.Body).Decode(&film); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode film payload", slog.String("error", err.Error()))
		respondError(w, r, h.logger, http.StatusBadRequest, "invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := film.Validate(h.validator); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	updated, err := h.films.Update(ctx, &film)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, updated)
}

// GetFilms обрабатывает GET /api/films.
func (h *FilmHandler) GetFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.films.GetAll(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, films)
}

// GetFilmByID обрабатывает GET /api/films/{id}.
func (h *FilmHandler) GetFilmByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}

	film, err := h.films.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, film)
}

// GetPopularFilms обрабатывает GET /api/films/popular?count=N (по умолчанию 10).
func (h *FilmHandler) GetPopularFilms(w http.ResponseWriter, r *http.Request) {
	count := defaultPopularCount
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		parsed, err := strconv.Atoi(countStr)
		if err != nil {
			respondError(w, r, h.logger, http.StatusBadRequest, "count must be an integer")
			return
		}
		count = parsed
	}

	films, err := h.films.GetPopular(r.Context(), count)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, films)
}

// AddLike обрабатывает PUT /api/films/{id}/like/{userId}.
func (h *FilmHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	userID, ok := pathInt(w, r, h.logger, "userId")
	if !ok {
		return
	}

	if err := h.films.AddLike(r.Context(), filmID, userID); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, nil)
}

// RemoveLike обрабатывает DELETE /api/films/{id}/like/{userId}.
func (h *FilmHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	userID, ok := pathInt(w, r, h.logger, "userId")
	if !ok {
		return
	}

	if err := h.films.RemoveLike(r.Context(), filmID, userID); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, nil)
}

// pathInt извлекает целочисленный path-параметр; при ошибке отвечает 400.
func pathInt(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (int, bool) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		respondError(w, r, logger, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return value, true
}
