package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/junelabs/june/internal/auth"
	"github.com/junelabs/june/internal/model"
	"github.com/junelabs/june/internal/repository"
)

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, name string) (string, error)
}

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	users  repository.UserRepository
	tokens TokenIssuer
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users repository.UserRepository, tokens TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// loginResponse is the success payload for login.
type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Login validates name+PIN against the credential store and issues a
// bearer token on match. Unknown user and wrong PIN collapse to the same
// response to avoid account enumeration.
//
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Name and PIN are required")
		return
	}

	pin := req.Pin.String()
	if req.Name == "" || pin == "" {
		writeError(w, http.StatusBadRequest, "Name and PIN are required")
		return
	}

	userID := strings.ToLower(strings.TrimSpace(req.Name))

	user, err := h.users.Lookup(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			h.logger.Warn("login failed",
				slog.String("reason", "unknown_user"),
				slog.String("user_id", userID),
			)
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("user lookup failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	valid, err := auth.VerifyPin(pin, user.PinHash)
	if err != nil {
		h.logger.Error("pin verification failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !valid {
		h.logger.Warn("login failed",
			slog.String("reason", "wrong_pin"),
			slog.String("user_id", userID),
		)
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Name)
	if err != nil {
		h.logger.Error("token issue failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("login successful", slog.String("user_id", user.ID))

	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  loginUser{ID: user.ID, Name: user.Name},
	})
}
