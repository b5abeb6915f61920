package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/zenhealth/hospital-analytics/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the error taxonomy onto HTTP statuses. Internal
// details are logged but never echoed to the client.
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeUnavailable:
			log.Error().Err(err).Msg("datastore unavailable")
			respondWithError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
		default:
			log.Error().Err(err).Msg("internal error")
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	log.Error().Err(err).Msg("unclassified error")
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
