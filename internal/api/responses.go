package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kuzo2004/java-filmorate/internal/domain"
	"github.com/kuzo2004/java-filmorate/internal/service"
)

// ErrorResponse — тело ответа при ошибке.
type ErrorResponse struct {
	Error      string                  `json:"error"`
	Violations []domain.FieldViolation `json:"violations,omitempty"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.ErrorContext(r.Context(), "Failed to encode JSON response",
				slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, message string) {
	respondJSON(w, r, logger, status, ErrorResponse{Error: message})
}

// respondServiceError транслирует типизированные ошибки сервисного слоя в HTTP-статусы:
// валидация и дубликаты — 400, отсутствие сущности — 404, остальное — 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(r.Context(), "Request validation failed", slog.String("error", validationErr.Error()))
		respondJSON(w, r, logger, http.StatusBadRequest, ErrorResponse{
			Error:      validationErr.Error(),
			Violations: validationErr.Violations,
		})
		return
	}

	var duplicateErr *service.DuplicateError
	if errors.As(err, &duplicateErr) {
		logger.WarnContext(r.Context(), "Duplicate rejected", slog.String("error", duplicateErr.Error()))
		respondError(w, r, logger, http.StatusBadRequest, duplicateErr.Error())
		return
	}

	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		logger.WarnContext(r.Context(), "Entity not found", slog.String("error", notFoundErr.Error()))
		respondError(w, r, logger, http.StatusNotFound, notFoundErr.Error())
		return
	}

	logger.ErrorContext(r.Context(), "Internal server error", slog.String("error", err.Error()))
	respondError(w, r, logger, http.StatusInternalServerError, "internal server error")
}
