package controllers

import (
	"errors"
	"net/http"

	"github.com/admin/games/daily-guess/internal/domain"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor переводит ошибку use case в HTTP-статус и текст для клиента.
// Внутренние ошибки наружу не отдаются
func StatusFor(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrNoImagesSeeded):
		return http.StatusNotFound, ErrorResponse{Error: "no images seeded, seed images first"}
	case errors.Is(err, domain.ErrInvalidImageInput):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
	}
}
