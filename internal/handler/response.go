package handler

import (
	"errors"

	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// errorStatuses picks the status each endpoint answers for client errors.
// The codes differ per endpoint for compatibility with existing clients.
type errorStatuses struct {
	validation int
	notFound   int
}

var (
	createStatuses = errorStatuses{validation: fiber.StatusBadRequest, notFound: fiber.StatusNotFound}
	patchStatuses  = errorStatuses{validation: fiber.StatusNotAcceptable, notFound: fiber.StatusNotFound}
	saleStatuses   = errorStatuses{validation: fiber.StatusBadRequest, notFound: fiber.StatusBadRequest}
)

// Helper untuk ambil User ID dari context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

func success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"message": message, "data": data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondError maps service errors onto statuses. Anything unrecognised is
// logged and answered without detail.
func respondError(c *fiber.Ctx, log *zap.Logger, err error, statuses errorStatuses) error {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		stockErr      *service.InsufficientStockError
		conflictErr   *service.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		body := fiber.Map{"error": validationErr.Message}
		if len(validationErr.Fields) > 0 {
			body["fields"] = validationErr.Fields
		}
		return c.Status(statuses.validation).JSON(body)
	case errors.As(err, &notFoundErr):
		return fail(c, statuses.notFound, notFoundErr.Error())
	case errors.As(err, &stockErr):
		return fail(c, fiber.StatusBadRequest, stockErr.Error())
	case errors.As(err, &conflictErr):
		return fail(c, fiber.StatusConflict, conflictErr.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	log.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("user_id", getUserID(c)),
		zap.Error(err),
	)
	return fail(c, fiber.StatusInternalServerError, "Internal Server Error")
}
