package stats

import (
	"net/http"

	"github.com/userboard/userboard/internal/httputil"
	"github.com/userboard/userboard/internal/logging"
)

// Handler contains the HTTP handler for the statistics endpoint
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// StatsResponse represents the statistics response
type StatsResponse struct {
	Success bool   `json:"success"`
	Stats   *Stats `json:"stats"`
}

// Get handles the protected statistics endpoint
// @Summary      User statistics
// @Description  Totals for registered, recently created, and recently active users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} StatsResponse
// @Failure      401 {object} httputil.ErrorResponse "Missing, invalid, or expired token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/users/stats [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	result, err := h.service.Get(r.Context())
	if err != nil {
		logger.Error("failed to compute user stats", "error", err.Error())
		httputil.RespondError(w, "Failed to fetch user statistics", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, StatsResponse{
		Success: true,
		Stats:   result,
	}, http.StatusOK)
}
