package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/William2809/spendwise-backend/internal/api/middleware"
	"github.com/William2809/spendwise-backend/internal/domain"
)

// writeDomainError maps a service error onto the HTTP status contract:
// validation 400, auth 401, not-found 404, upstream 502, everything else 500.
func writeDomainError(w http.ResponseWriter, log zerolog.Logger, err error, msg string) {
	var upstream *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrValidation):
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, "not found")
	case errors.As(err, &upstream):
		log.Error().Err(err).Str("service", string(upstream.Service)).Msg(msg)
		middleware.WriteError(w, http.StatusBadGateway, fmt.Sprintf("%s service unavailable", upstream.Service))
	default:
		log.Error().Err(err).Msg(msg)
		middleware.WriteError(w, http.StatusInternalServerError, msg)
	}
}

// decodeJSON decodes the request body into dst and writes a 400 on failure.
// It returns false when the caller should stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
