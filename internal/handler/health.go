package handler

import (
	"net/http"
	"time"

	"github.com/junelabs/june/internal/repository"
)

// HealthHandler serves the health check endpoint.
type HealthHandler struct {
	users       repository.UserRepository
	environment string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(users repository.UserRepository, environment string) *HealthHandler {
	return &HealthHandler{
		users:       users,
		environment: environment,
	}
}

// HealthResponse is the health check payload. StorageType documents that
// conversation state lives with the client, not the server.
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	UsersCount  int    `json:"usersCount"`
	StorageType string `json:"storageType"`
}

// Health reports server status.
//
// GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.users.Count(r.Context())
	if err != nil {
		count = 0
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Environment: h.environment,
		UsersCount:  count,
		StorageType: "localStorage (client-side)",
	})
}
