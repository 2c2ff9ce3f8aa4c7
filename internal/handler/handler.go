package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"copyshop/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps a known domain error to its HTTP status; anything
// unrecognised is a 500 with a generic message.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrTariffNotFound),
		errors.Is(err, model.ErrOrderNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, model.ErrInvalidQuantity),
		errors.Is(err, model.ErrInvalidCart),
		errors.Is(err, model.ErrUnknownState):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, model.ErrMissingReason):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, model.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	}

	writeError(w, status, message, logger)
}
