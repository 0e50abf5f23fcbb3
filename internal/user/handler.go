package user

import (
	"context"
	"fmt"
	"net/http"

	"github.com/userboard/userboard/internal/httputil"
	"github.com/userboard/userboard/internal/logging"
)

// Lister is the slice of the repository the listing handler needs
type Lister interface {
	List(ctx context.Context) ([]User, error)
}

// Handler contains HTTP handlers for user endpoints
type Handler struct {
	users  Lister
	logger *logging.Logger
}

func NewHandler(users Lister, logger *logging.Logger) *Handler {
	return &Handler{
		users:  users,
		logger: logger,
	}
}

// ListResponse represents the user listing response
type ListResponse struct {
	Success bool        `json:"success"`
	Users   []Sanitized `json:"users"`
	Count   int         `json:"count"`
	Message string      `json:"message"`
}

// List handles the protected user listing
// @Summary      List all users
// @Description  Return all registered users, newest first, password excluded
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ListResponse
// @Failure      401 {object} httputil.ErrorResponse "Missing, invalid, or expired token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	users, err := h.users.List(r.Context())
	if err != nil {
		logger.Error("failed to fetch users", "error", err.Error())
		httputil.RespondError(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}

	sanitized := make([]Sanitized, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, users[i].Sanitize())
	}

	logger.Info("users fetched", "count", len(sanitized))

	httputil.RespondJSON(w, ListResponse{
		Success: true,
		Users:   sanitized,
		Count:   len(sanitized),
		Message: fmt.Sprintf("Found %d users", len(sanitized)),
	}, http.StatusOK)
}
