package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"trendmindAPI/internal/identity"
	idtypes "trendmindAPI/internal/types/identity"
	"trendmindAPI/services"
)

// WebhookHandler receives Clerk user lifecycle events. Deleting a user in
// the Clerk dashboard wipes their posts the same way in-app deletion does.
type WebhookHandler struct {
	userService *services.UserService
	verifier    *identity.WebhookVerifier
	logger      *zap.Logger
}

func NewWebhookHandler(userService *services.UserService, verifier *identity.WebhookVerifier, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		userService: userService,
		verifier:    verifier,
		logger:      logger.Named("webhook_handler"),
	}
}

func (h *WebhookHandler) HandleClerkWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Error reading body")
		return
	}

	if err := h.verifier.Verify(r.Header, body); err != nil {
		h.logger.Warn("rejected webhook", zap.Error(err))
		respondWithError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var event idtypes.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		respondWithError(w, http.StatusBadRequest, "Error parsing webhook")
		return
	}

	switch event.Type {
	case "user.deleted":
		var data idtypes.DeletedUserData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			respondWithError(w, http.StatusBadRequest, "Error parsing webhook")
			return
		}
		if err := h.userService.HandleUserDeleted(ctx, data.ID); err != nil {
			respondWithServiceError(w, r, h.logger, err)
			return
		}
		h.logger.Info("cleared posts of deleted user", zap.String("user_id", data.ID))
	default:
		h.logger.Debug("unhandled webhook event", zap.String("type", event.Type))
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
