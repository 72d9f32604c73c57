package handlers

import (
	"crypto/subtle"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AkshayEddula/bibleapp-sub000/internal/httpx"
	"github.com/AkshayEddula/bibleapp-sub000/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// GetStatus returns the caller's subscription state.
// GET /api/subscription
func (h *SubscriptionHandler) GetStatus(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	return c.JSON(fiber.Map{
		"subscription": h.subscriptionService.GetStatus(userID),
	})
}

// Webhook applies billing-provider events. Authenticated by a shared secret
// header, not a user token.
// POST /api/subscription/webhook
func (h *SubscriptionHandler) Webhook(c *fiber.Ctx) error {
	secret := strings.TrimSpace(os.Getenv("BILLING_WEBHOOK_SECRET"))
	if secret == "" {
		return httpx.Error(c, fiber.StatusServiceUnavailable, "webhook_not_configured", "Webhook not configured")
	}

	provided := strings.TrimSpace(c.Get("X-Webhook-Secret"))
	if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
		return httpx.Unauthorized(c, "invalid_webhook_secret", "Invalid webhook secret")
	}

	var input service.WebhookInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	if err := h.subscriptionService.HandleWebhook(input); err != nil {
		return httpx.BadRequest(c, "webhook_rejected", err.Error())
	}

	return c.JSON(fiber.Map{"ok": true})
}
