package handler

import (
	"encoding/json"

	"go-inventory-pos/internal/service"
	"go-inventory-pos/pkg/webhook"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	eventUserCreated = "user.created"
	eventUserDeleted = "user.deleted"
)

type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

func (e *identityEvent) primaryEmail() string {
	if len(e.Data.EmailAddresses) == 0 {
		return ""
	}
	return e.Data.EmailAddresses[0].EmailAddress
}

type WebhookHandler struct {
	verifier *webhook.Verifier
	users    service.UserService
	log      *zap.Logger
}

func NewWebhookHandler(verifier *webhook.Verifier, users service.UserService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, users: users, log: log}
}

// Identity mirrors user lifecycle events of the identity provider into the
// users table. The body is only trusted after its signature checks out.
func (h *WebhookHandler) Identity(c *fiber.Ctx) error {
	payload := c.Body()
	err := h.verifier.Verify(
		c.Get(webhook.HeaderID),
		c.Get(webhook.HeaderTimestamp),
		c.Get(webhook.HeaderSignature),
		payload,
	)
	if err != nil {
		h.log.Warn("rejected webhook", zap.Error(err))
		return fail(c, fiber.StatusUnauthorized, "Error verifying webhook")
	}

	var evt identityEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	switch evt.Type {
	case eventUserCreated:
		user, created, err := h.users.CreateUser(c.UserContext(), &service.CreateUserRequest{
			ID:    evt.Data.ID,
			Email: evt.primaryEmail(),
			Name:  evt.Data.FirstName,
		})
		if err != nil {
			return respondError(c, h.log, err, createStatuses)
		}
		if !created {
			return success(c, fiber.StatusOK, "User already exists", user)
		}
		return success(c, fiber.StatusCreated, "User Created Successfully", user)

	case eventUserDeleted:
		if err := h.users.DeleteUser(c.UserContext(), evt.Data.ID); err != nil {
			return respondError(c, h.log, err, createStatuses)
		}
		return success(c, fiber.StatusOK, "User Deleted", fiber.Map{"id": evt.Data.ID})
	}

	return fail(c, fiber.StatusBadRequest, "Unhandled event type")
}
