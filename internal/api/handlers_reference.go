package api

import (
	"log/slog"
	"net/http"

	"github.com/kuzo2004/java-filmorate/internal/service"
)

// ReferenceHandler — HTTP-обработчики справочников жанров и рейтингов MPA.
type ReferenceHandler struct {
	genres *service.GenreService
	mpa    *service.MpaService
	logger *slog.Logger
}

func NewReferenceHandler(genres *service.GenreService, mpa *service.MpaService, logger *slog.Logger) *ReferenceHandler {
	return &ReferenceHandler{genres: genres, mpa: mpa, logger: logger}
}

// GetGenres обрабатывает GET /api/genres.
func (h *ReferenceHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genres.GetAll(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, genres)
}

// GetGenreByID обрабатывает GET /api/genres/{id}.
func (h *ReferenceHandler) GetGenreByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}

	genre, err := h.genres.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, genre)
}

// GetAllMpa обрабатывает GET /api/mpa.
func (h *ReferenceHandler) GetAllMpa(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.mpa.GetAll(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, ratings)
}

// GetMpaByID обрабатывает GET /api/mpa/{id}.
func (h *ReferenceHandler) GetMpaByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}

	rating, err := h.mpa.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, rating)
}
