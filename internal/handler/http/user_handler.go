package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-microservices/user-service/internal/user"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Get("/health", handleHealth)

	router.Post("/users", h.handleCreateUser)
	router.Get("/users", h.handleGetUsersByBirthDateRange)
	router.Put("/users/{id}", h.handleUpdateUser)
	router.Patch("/users/{id}", h.handleUpdatePartialUser)
	router.Delete("/users/{id}", h.handleDeleteUser)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *UserHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var requestPayload user.CreateOrReplaceRequest

	if err := decodeJSON(r, &requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	createdUser, err := h.service.CreateUser(r.Context(), requestPayload)
	if err != nil {
		respondWithServiceError(w, err, "Failed to create user")
		return
	}

	respondWithJSON(w, http.StatusCreated, createdUser)
}

func (h *UserHandler) handleGetUsersByBirthDateRange(w http.ResponseWriter, r *http.Request) {
	var (
		rng user.DateRange
		err error
	)

	query := r.URL.Query()
	if rng.From, err = parseDateParam(query, "from"); err != nil {
		log.Warn().Err(err).Msg("Failed to parse 'from' query parameter")
		respondWithError(w, http.StatusBadRequest, "Invalid 'from' parameter, expected "+user.DateLayout)
		return
	}
	if rng.To, err = parseDateParam(query, "to"); err != nil {
		log.Warn().Err(err).Msg("Failed to parse 'to' query parameter")
		respondWithError(w, http.StatusBadRequest, "Invalid 'to' parameter, expected "+user.DateLayout)
		return
	}

	users, err := h.service.GetUsersByBirthDateRange(r.Context(), rng)
	if err != nil {
		respondWithServiceError(w, err, "Failed to get users by birth date range")
		return
	}

	respondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		log.Warn().Err(err).Str("user_id", chi.URLParam(r, "id")).Msg("Failed to parse id parameter from URL")
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var requestPayload user.CreateOrReplaceRequest
	if err := decodeJSON(r, &requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode user")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	updatedUser, err := h.service.UpdateUser(r.Context(), userID, requestPayload)
	if err != nil {
		respondWithServiceError(w, err, "Failed to update user")
		return
	}

	respondWithJSON(w, http.StatusOK, updatedUser)
}

func (h *UserHandler) handleUpdatePartialUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		log.Warn().Err(err).Str("user_id", chi.URLParam(r, "id")).Msg("Failed to parse id parameter from URL")
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var requestPayload user.PartialUpdateRequest
	if err := decodeJSON(r, &requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode partial user")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	updatedUser, err := h.service.UpdatePartialUser(r.Context(), userID, requestPayload)
	if err != nil {
		respondWithServiceError(w, err, "Failed to update user")
		return
	}

	respondWithJSON(w, http.StatusOK, updatedUser)
}

func (h *UserHandler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		log.Warn().Err(err).Str("user_id", chi.URLParam(r, "id")).Msg("Failed to parse id parameter from URL")
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		respondWithServiceError(w, err, "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
