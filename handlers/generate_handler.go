package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	ctypes "trendmindAPI/internal/types/composer"
	"trendmindAPI/internal/types/post"
	"trendmindAPI/services"
)

// generateTimeout bounds one call to the language model.
const generateTimeout = 30 * time.Second

type GenerateHandler struct {
	generateService *services.GenerateService
	logger          *zap.Logger
}

func NewGenerateHandler(generateService *services.GenerateService, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		generateService: generateService,
		logger:          logger.Named("generate_handler"),
	}
}

// Generate always answers 200 with the result envelope once the input is
// accepted. Model failures are reported inside it.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req ctypes.GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.generateService.Generate(ctx, req)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

type GenerateAndSaveResponse struct {
	ctypes.GenerateResult
	Post *post.ScheduledPost `json:"post,omitempty"`
}

// GenerateAndSave answers 201 with the stored post, 200 with the envelope
// when nothing was generated, or the store's error status with the
// generated content when only the save failed.
func (h *GenerateHandler) GenerateAndSave(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req ctypes.GenerateAndSaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, saved, err := h.generateService.GenerateAndSave(ctx, userID, &req)
	if err != nil && result.Success {
		// the text was generated but not stored; hand it back so the
		// client can save it through POST /posts
		status, message := serviceErrorStatus(r, h.logger, err)
		result.Error = message
		respondWithJSON(w, status, GenerateAndSaveResponse{GenerateResult: result})
		return
	}
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	status := http.StatusOK
	if saved != nil {
		status = http.StatusCreated
	}
	respondWithJSON(w, status, GenerateAndSaveResponse{GenerateResult: result, Post: saved})
}
