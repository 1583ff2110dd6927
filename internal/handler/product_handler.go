package handler

import (
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service service.ProductService
	log     *zap.Logger
}

func NewProductHandler(s service.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{service: s, log: log}
}

func (h *ProductHandler) AddProduct(c *fiber.Ctx) error {
	var req service.AddProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	product, merged, err := h.service.AddProduct(c.UserContext(), getUserID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, createStatuses)
	}

	message := "Product created successfully"
	if merged {
		message = "Product stock updated successfully"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message, "data": product, "merged": merged})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusNotAcceptable, "Invalid JSON")
	}

	updated, err := h.service.UpdateProduct(c.UserContext(), getUserID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, patchStatuses)
	}

	return success(c, fiber.StatusOK, "Product updated successfully", updated)
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	var req service.DeleteProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusNotAcceptable, "Invalid JSON")
	}

	deleted, err := h.service.DeleteProduct(c.UserContext(), getUserID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, patchStatuses)
	}

	return success(c, fiber.StatusOK, "Product deleted successfully", deleted)
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext(), getUserID(c))
	if err != nil {
		return respondError(c, h.log, err, createStatuses)
	}
	return success(c, fiber.StatusOK, "Products fetched successfully", products)
}
