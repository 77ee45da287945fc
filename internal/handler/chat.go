package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/junelabs/june/internal/auth"
	"github.com/junelabs/june/internal/model"
	"github.com/junelabs/june/internal/service"
)

// ChatHandler serves the AI chat endpoint.
type ChatHandler struct {
	chat   *service.ChatService
	logger *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(chat *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		logger: logger,
	}
}

// chatResponse is the success payload for chat.
type chatResponse struct {
	Response string `json:"response"`
}

// Chat forwards the user's turn to the completion API and returns the
// single generated reply. Requires a verified token; the auth middleware
// must have run.
//
// POST /api/ai/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustClaimsFromContext(r.Context())

	var raw struct {
		Messages            json.RawMessage `json:"messages"`
		MessageType         string          `json:"messageType"`
		ConversationHistory []model.Turn    `json:"conversationHistory"`
	}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Messages array is required")
		return
	}

	// messages must be present and an array; null or absent is rejected.
	var messages []model.Turn
	if len(raw.Messages) == 0 || string(raw.Messages) == "null" {
		writeError(w, http.StatusBadRequest, "Messages array is required")
		return
	}
	if err := json.Unmarshal(raw.Messages, &messages); err != nil {
		writeError(w, http.StatusBadRequest, "Messages array is required")
		return
	}

	req := &model.ChatRequest{
		Messages:            messages,
		MessageType:         raw.MessageType,
		ConversationHistory: raw.ConversationHistory,
	}

	reply, err := h.chat.Respond(r.Context(), claims.Name, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUpstreamRateLimited):
			writeError(w, http.StatusTooManyRequests, "AI service rate limit exceeded. Please try again in a moment.")
		default:
			h.logger.Error("chat failed",
				slog.String("user_id", claims.UserID),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusInternalServerError, "AI service error. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}
