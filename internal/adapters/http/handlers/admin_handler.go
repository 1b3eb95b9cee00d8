package handlers

import (
	"careconnect-backend/internal/core/services"
	"careconnect-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin-only aggregate endpoints
type AdminHandler struct {
	statsService *services.StatsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(statsService *services.StatsService) *AdminHandler {
	return &AdminHandler{statsService: statsService}
}

// Stats returns dashboard counters
// @Summary Admin dashboard stats
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.statsService.GetAdminStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch stats")
	}

	return response.Success(c, "", stats)
}
