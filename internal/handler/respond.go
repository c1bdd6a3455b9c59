// Package handler provides the HTTP surface of the Top Notes catalog.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/topnotes/catalog-api/internal/service"
)

// detailResponse is the wire shape of every error body.
type detailResponse struct {
	Detail string `json:"detail"`
}

// messageResponse is the wire shape of bare success messages.
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
// A nil body is written literally as null.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeDetail writes an error body {"detail": ...}.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

// writeMessage writes a success body {"message": ...}.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeServiceError maps a service error onto the HTTP taxonomy.
// Unexpected errors are logged with full detail; the client only sees
// a generic message.
func writeServiceError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidPerfumeID),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrSettingKeyRequired),
		errors.Is(err, service.ErrSettingValueRequired),
		errors.Is(err, service.ErrImageTooLarge),
		errors.Is(err, service.ErrUnsupportedImageType):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		writeDetail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotStaff):
		writeDetail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrTooManyAttempts):
		writeDetail(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, service.ErrPerfumeNotFound),
		errors.Is(err, service.ErrAdminNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	default:
		logger.Error().Err(err).Msg("request failed")
		writeDetail(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes a request body, rejecting malformed JSON.
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
