package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/servicedesk/atendimentos/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. The
// front-end reads the "detail" key.
type errorResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"detail": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Usuário não encontrado"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "Usuário já existe"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Usuário ou senha incorretos"
	case errors.Is(err, domain.ErrCurrentPasswordMismatch):
		return http.StatusBadRequest, "Senha atual incorreta"
	case errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusBadRequest, "Senha inválida"
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, "Atendimento não encontrado"
	case errors.Is(err, domain.ErrEventInFlight):
		return http.StatusConflict, "Requisição já em processamento"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "erro interno"
}
