package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civicpulse-service/internal/service"
)

// StatsHandler serves the authority dashboard aggregates.
type StatsHandler struct {
	service *service.TriageService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(triageService *service.TriageService) *StatsHandler {
	return &StatsHandler{service: triageService}
}

// GetStats GET /stats.
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.service.Stats()})
}
