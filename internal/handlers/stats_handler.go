package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AkshayEddula/bibleapp-sub000/internal/httpx"
	"github.com/AkshayEddula/bibleapp-sub000/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetMine returns the caller's points, streak, and counters.
// GET /api/stats/me
func (h *StatsHandler) GetMine(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	stats, err := h.statsService.GetMine(userID)
	if err != nil {
		return httpx.Internal(c, "stats_failed")
	}

	return c.JSON(fiber.Map{
		"stats": stats,
	})
}

// Leaderboard returns the top users by points.
// GET /api/stats/leaderboard?limit=...
func (h *StatsHandler) Leaderboard(c *fiber.Ctx) error {
	rows, err := h.statsService.Leaderboard(c.QueryInt("limit", 20))
	if err != nil {
		return httpx.Internal(c, "leaderboard_failed")
	}

	return c.JSON(fiber.Map{
		"leaderboard": rows,
	})
}
