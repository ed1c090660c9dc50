package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/satisfaction-feedback/internal/application/services"
)

// FeedbackService defines the feedback operations used by the handler.
type FeedbackService interface {
	Submit(ctx context.Context, satisfactionLevel string) (*services.SubmitResult, error)
}

// FeedbackHandler handles kiosk submissions.
type FeedbackHandler struct {
	service FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(service FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type feedbackRequest struct {
	SatisfactionLevel string `json:"satisfactionLevel"`
}

type feedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// SubmitFeedback handles POST /feedback
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var payload feedbackRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.Submit(r.Context(), payload.SatisfactionLevel)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, feedbackResponse{
		Success: true,
		Message: result.Message,
		ID:      result.ID,
	})
}
