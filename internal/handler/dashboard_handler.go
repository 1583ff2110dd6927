package handler

import (
	"time"
	_ "time/tzdata"

	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(s service.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, log: log}
}

// GetDashboardStats returns low stock, today's sales and revenue
// Query params: tz (IANA zone of the viewer, default UTC)
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	loc, err := time.LoadLocation(c.Query("tz", "UTC"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid time zone")
	}

	stats, err := h.service.GetStats(c.UserContext(), getUserID(c), loc)
	if err != nil {
		return respondError(c, h.log, err, createStatuses)
	}

	return success(c, fiber.StatusOK, "Dashboard stats fetched successfully", stats)
}
