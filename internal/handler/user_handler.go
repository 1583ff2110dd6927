package handler

import (
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	service service.UserService
	log     *zap.Logger
}

func NewUserHandler(s service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{service: s, log: log}
}

// Me returns the authenticated user
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.service.Me(c.UserContext(), getUserID(c))
	if err != nil {
		return respondError(c, h.log, err, createStatuses)
	}
	return success(c, fiber.StatusOK, "User fetched successfully", user)
}
