package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-microservices/user-service/internal/user"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}

// respondWithError отправляет JSON ошибку
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON отправляет JSON ответ
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondWithServiceError maps a service error onto a status code and body.
func respondWithServiceError(w http.ResponseWriter, err error, fallbackMessage string) {
	var validationErr *user.ValidationError
	if errors.As(err, &validationErr) {
		respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  "Validation failed",
			Errors: validationErr.Messages(),
		})
		return
	}

	statusCode := mapErrorToStatusCode(err)

	clientMessage := fallbackMessage
	if errors.Is(err, user.ErrNotFound) {
		clientMessage = "User not found"
	} else {
		log.Error().Err(err).Msg(fallbackMessage)
	}

	respondWithError(w, statusCode, clientMessage)
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// parseDateParam returns nil when the parameter is missing so the service
// can report it alongside the other range violations.
func parseDateParam(query url.Values, name string) (*user.Date, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
