// Package service contains business logic for the chat endpoint.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/junelabs/june/internal/groq"
	"github.com/junelabs/june/internal/model"
	"github.com/junelabs/june/internal/prompt"
)

// HistoryWindow is the number of trailing history turns forwarded to the
// completion API. Older turns are dropped by simple suffix truncation.
const HistoryWindow = 30

// FallbackReply is returned when the provider produces no content.
const FallbackReply = "I'm having trouble thinking right now. Can you try again?"

var (
	// ErrUpstreamRateLimited indicates the AI provider rejected the request
	// due to its own rate limit.
	ErrUpstreamRateLimited = errors.New("ai service rate limited")

	// ErrUpstream covers every other AI provider failure.
	ErrUpstream = errors.New("ai service error")
)

// Completer is the boundary to the completion API.
type Completer interface {
	Chat(ctx context.Context, messages []groq.ChatMessage) (*groq.ChatResponse, error)
}

// ChatService assembles completion requests and maps provider failures to
// typed errors so handlers never inspect provider-specific shapes.
type ChatService struct {
	completer Completer
	logger    *slog.Logger
}

// NewChatService creates a ChatService.
func NewChatService(completer Completer, logger *slog.Logger) *ChatService {
	return &ChatService{
		completer: completer,
		logger:    logger,
	}
}

// Respond produces a single reply for the given chat request.
//
// The final message list is [system] + [history window] + [current turns].
// For initial greetings the client's literal messages are replaced by a
// synthesized instruction; only the history length matters.
func (s *ChatService) Respond(ctx context.Context, userName string, req *model.ChatRequest) (string, error) {
	messageType := req.MessageType
	if messageType == "" {
		messageType = model.MessageTypeConversation
	}

	history := windowHistory(req.ConversationHistory)

	current := req.Messages
	if messageType == model.MessageTypeInitialGreeting {
		current = []model.Turn{prompt.GreetingTurn(userName, len(req.ConversationHistory))}
	}

	messages := make([]groq.ChatMessage, 0, 1+len(history)+len(current))
	messages = append(messages, groq.ChatMessage{
		Role:    "system",
		Content: prompt.System(userName, messageType),
	})
	for _, turn := range history {
		messages = append(messages, groq.ChatMessage{Role: turn.Role, Content: turn.Content})
	}
	for _, turn := range current {
		messages = append(messages, groq.ChatMessage{Role: turn.Role, Content: turn.Content})
	}

	s.logger.Info("ai request",
		slog.String("user", userName),
		slog.String("message_type", messageType),
		slog.Int("context_messages", len(history)),
	)

	resp, err := s.completer.Chat(ctx, messages)
	if err != nil {
		if errors.Is(err, groq.ErrRateLimited) {
			return "", ErrUpstreamRateLimited
		}
		s.logger.Error("ai request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	reply := resp.GetContent()
	if reply == "" {
		reply = FallbackReply
	}
	return reply, nil
}

// windowHistory returns the trailing HistoryWindow entries, order preserved.
func windowHistory(history []model.Turn) []model.Turn {
	if len(history) <= HistoryWindow {
		return history
	}
	return history[len(history)-HistoryWindow:]
}
