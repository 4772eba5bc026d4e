package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"trendmindAPI/internal/identity"
	"trendmindAPI/internal/store"
	"trendmindAPI/middleware"
	"trendmindAPI/services"
)

const maxBodyBytes = 1 << 20

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// requireUser returns the authenticated Clerk id or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetClerkID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return "", false
	}
	return userID, true
}

// respondWithServiceError maps service and store errors to HTTP statuses.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status, message := serviceErrorStatus(r, logger, err)
	respondWithError(w, status, message)
}

func serviceErrorStatus(r *http.Request, logger *zap.Logger, err error) (int, string) {
	var perr *identity.ProviderError

	switch {
	case errors.Is(err, services.ErrInvalidPost),
		errors.Is(err, services.ErrInvalidQuery),
		errors.Is(err, services.ErrInvalidProfile),
		errors.Is(err, services.ErrTopicMissing):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &perr):
		return http.StatusBadGateway, perr.Message
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, "Your posts were changed elsewhere, please retry"
	case errors.Is(err, store.ErrDuplicateID):
		return http.StatusConflict, "Post already exists"
	case errors.Is(err, store.ErrCorruptSlot):
		logger.Error("corrupt post slot",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		return http.StatusInternalServerError, "Stored posts are unreadable"
	default:
		logger.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	}
}
