package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"go-inventory-pos/internal/service"
	"go-inventory-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRespondErrorStatuses(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		statuses errorStatuses
		status   int
		message  string
	}{
		{
			name:     "validation on patch endpoints",
			err:      &service.ValidationError{Message: "Missing required data (id, data)", Fields: []*validator.ErrorResponse{{FailedField: "data", Tag: "required"}}},
			statuses: patchStatuses,
			status:   fiber.StatusNotAcceptable,
			message:  "Missing required data (id, data)",
		},
		{
			name:     "not found on sale creation",
			err:      fmt.Errorf("tx: %w", &service.NotFoundError{Resource: "Product", ID: "p1"}),
			statuses: saleStatuses,
			status:   fiber.StatusBadRequest,
			message:  "Product with ID p1 not found",
		},
		{
			name:     "not found elsewhere",
			err:      &service.NotFoundError{Resource: "Sale", ID: "s1"},
			statuses: createStatuses,
			status:   fiber.StatusNotFound,
			message:  "Sale with ID s1 not found",
		},
		{
			name:     "insufficient stock",
			err:      &service.InsufficientStockError{ProductName: "A", Available: 2, Requested: 3},
			statuses: saleStatuses,
			status:   fiber.StatusBadRequest,
			message:  "Insufficient stock for A. Available: 2, Requested: 3",
		},
		{
			name:     "conflict",
			err:      &service.ConflictError{Resource: "User", Field: "email", Value: "a@shop.test"},
			statuses: createStatuses,
			status:   fiber.StatusConflict,
			message:  "User with email a@shop.test already exists",
		},
		{
			name:     "unauthorized",
			err:      service.ErrUnauthorized,
			statuses: createStatuses,
			status:   fiber.StatusUnauthorized,
			message:  "Unauthorized",
		},
		{
			name:     "internal details are hidden",
			err:      errors.New("dial tcp 10.0.0.5:5432: connection refused"),
			statuses: createStatuses,
			status:   fiber.StatusInternalServerError,
			message:  "Internal Server Error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondError(c, zap.NewNop(), tc.err, tc.statuses)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.message, body["error"])
		})
	}
}
