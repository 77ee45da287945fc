package model

import (
	"encoding/json"
	"strings"
)

// Message types accepted on the chat endpoint.
const (
	MessageTypeInitialGreeting = "initial_greeting"
	MessageTypeConversation    = "conversation"
)

// Turn is a single conversation entry. The server never stores turns;
// they arrive on every chat request and are discarded after the response.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/ai/chat. History is client-owned
// (browser localStorage) and treated as untrusted, ordered input.
type ChatRequest struct {
	Messages            []Turn `json:"messages"`
	MessageType         string `json:"messageType"`
	ConversationHistory []Turn `json:"conversationHistory"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Name string   `json:"name"`
	Pin  PinField `json:"pin"`
}

// PinField accepts the PIN as either a JSON string or a number, since
// clients have historically sent both.
type PinField string

// UnmarshalJSON implements json.Unmarshaler.
func (p *PinField) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*p = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*p = PinField(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PinField(n.String())
	return nil
}

// String returns the PIN as a plain string.
func (p PinField) String() string { return string(p) }
