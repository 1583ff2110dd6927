package handler

import (
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SaleHandler struct {
	service service.SaleService
	log     *zap.Logger
}

func NewSaleHandler(s service.SaleService, log *zap.Logger) *SaleHandler {
	return &SaleHandler{service: s, log: log}
}

func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	sale, err := h.service.CreateSale(c.UserContext(), getUserID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, saleStatuses)
	}

	return success(c, fiber.StatusCreated, "Sale created successfully", sale)
}

func (h *SaleHandler) UpdatePayment(c *fiber.Ctx) error {
	var req service.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusNotAcceptable, "Invalid JSON")
	}

	sale, err := h.service.UpdatePayment(c.UserContext(), getUserID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, patchStatuses)
	}

	return success(c, fiber.StatusOK, "Sale updated successfully", sale)
}

func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	var req service.DeleteSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	sale, err := h.service.DeleteSale(c.UserContext(), getUserID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, createStatuses)
	}

	return success(c, fiber.StatusOK, "Sale deleted successfully", sale)
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.ListSales(c.UserContext(), getUserID(c))
	if err != nil {
		return respondError(c, h.log, err, createStatuses)
	}
	return success(c, fiber.StatusOK, "Sales fetched successfully", sales)
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid sale ID")
	}

	sale, err := h.service.GetSale(c.UserContext(), getUserID(c), id)
	if err != nil {
		return respondError(c, h.log, err, createStatuses)
	}
	return success(c, fiber.StatusOK, "Sale fetched successfully", sale)
}
