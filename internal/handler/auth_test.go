package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/junelabs/june/internal/auth"
	"github.com/junelabs/june/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthHandler(t *testing.T) (*AuthHandler, *auth.TokenManager) {
	t.Helper()

	users, err := repository.NewInMemory(repository.DefaultSeed)
	if err != nil {
		t.Fatalf("NewInMemory failed: %v", err)
	}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthHandler(users, tokens, testLogger()), tokens
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h, tokens := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"name":"Parvathy","pin":"4321"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.User.ID != "parvathy" {
		t.Errorf("expected user id 'parvathy', got %s", response.User.ID)
	}
	if response.User.Name != "Parvathy" {
		t.Errorf("expected user name 'Parvathy', got %s", response.User.Name)
	}

	// The issued token must pass verification.
	claims, err := tokens.Verify(response.Token)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.UserID != "parvathy" {
		t.Errorf("expected token user id 'parvathy', got %s", claims.UserID)
	}
}

func TestAuthHandler_Login_NormalizesName(t *testing.T) {
	h, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"name":"  PARVATHY  ","pin":"4321"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 for case/space-insensitive name, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_NumericPin(t *testing.T) {
	h, _ := newAuthHandler(t)

	// Clients have sent the PIN as a JSON number.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"name":"Parvathy","pin":4321}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 for numeric pin, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_WrongPin(t *testing.T) {
	h, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"name":"Parvathy","pin":"0000"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["error"] != "Invalid credentials" {
		t.Errorf("unexpected error message: %s", response["error"])
	}
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	h, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"name":"nobody","pin":"4321"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// Same message as a wrong PIN, so accounts cannot be enumerated.
	if response["error"] != "Invalid credentials" {
		t.Errorf("unexpected error message: %s", response["error"])
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h, _ := newAuthHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing pin", `{"name":"Parvathy"}`},
		{"missing name", `{"pin":"4321"}`},
		{"empty body", `{}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Login(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}

			var response map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response["error"] != "Name and PIN are required" {
				t.Errorf("unexpected error message: %s", response["error"])
			}
		})
	}
}
