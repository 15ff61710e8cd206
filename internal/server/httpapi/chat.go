package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/supportchat/internal/common"
	"github.com/dmitrijs2005/supportchat/internal/server/models"
)

type messageRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type messageResponse struct {
	Response string `json:"response"`
}

type historyResponse struct {
	History []*models.ChatMessage `json:"history"`
}

type exportResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// userIDFor prefers an explicit id and falls back to the bearer identity.
func userIDFor(r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if id, ok := IdentityFromContext(r.Context()); ok {
		return id.UserID
	}
	return ""
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req messageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(ctx, w, http.StatusBadRequest, "Invalid request body.", h.logger)
		return
	}

	reply, err := h.chat.Send(ctx, userIDFor(r, req.UserID), req.Message)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			respondWithError(ctx, w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		respondWithServerError(ctx, w, "Failed to get response from chatbot. Please check backend logs.", err, h.logger)
		return
	}

	respondWithJSON(ctx, w, http.StatusOK, messageResponse{Response: reply}, h.logger)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := userIDFor(r, r.URL.Query().Get("userId"))
	if userID == "" && !h.opts.AllowUnscopedHistory {
		respondWithError(ctx, w, http.StatusBadRequest, "userId is required.", h.logger)
		return
	}

	msgs, err := h.chat.History(ctx, userID)
	if err != nil {
		h.logger.Error(ctx, "history failed", "user_id", userID, "error", err)
		respondWithServerError(ctx, w, "Failed to fetch chat history", err, h.logger)
		return
	}

	respondWithJSON(ctx, w, http.StatusOK, historyResponse{History: msgs}, h.logger)
}

func (h *Handler) exportHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFromContext(ctx)

	export, err := h.transcripts.Export(ctx, id.UserID)
	switch {
	case err == nil:
		respondWithJSON(ctx, w, http.StatusCreated, exportResponse{Key: export.Key, URL: export.URL}, h.logger)
	case errors.Is(err, common.ErrNotConfigured):
		respondWithError(ctx, w, http.StatusServiceUnavailable, "Transcript export is not configured.", h.logger)
	case errors.Is(err, common.ErrValidation):
		respondWithError(ctx, w, http.StatusBadRequest, err.Error(), h.logger)
	default:
		h.logger.Error(ctx, "transcript export failed", "user_id", id.UserID, "error", err)
		respondWithServerError(ctx, w, "Failed to export chat history", err, h.logger)
	}
}
