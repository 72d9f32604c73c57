package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AkshayEddula/bibleapp-sub000/internal/httpx"
	"github.com/AkshayEddula/bibleapp-sub000/internal/service"
	"github.com/AkshayEddula/bibleapp-sub000/internal/validation"
)

type PrayerHandler struct {
	prayerService *service.PrayerService
}

func NewPrayerHandler(prayerService *service.PrayerService) *PrayerHandler {
	return &PrayerHandler{prayerService: prayerService}
}

// Create posts a prayer request.
// POST /api/prayers
func (h *PrayerHandler) Create(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input service.CreatePrayerRequestInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if !validation.ValidateClientID(input.ClientID) {
		return httpx.BadRequest(c, "invalid_client_id", "client_id must be a UUID")
	}
	input.Title = validation.TrimAndLimit(input.Title, 120)
	input.Content = validation.TrimAndLimit(input.Content, validation.MaxContentLength())

	request, err := h.prayerService.Create(userID, input)
	if err != nil {
		return httpx.BadRequest(c, "create_prayer_failed", err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"prayer_request": request.ToResponse(false),
	})
}

// List returns a page of the prayer wall.
// GET /api/prayers?cursor=...&limit=...
func (h *PrayerHandler) List(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	cursor := uint(c.QueryInt("cursor", 0))
	limit := c.QueryInt("limit", 20)

	requests, err := h.prayerService.List(userID, cursor, limit)
	if err != nil {
		return httpx.Internal(c, "list_prayers_failed")
	}

	var nextCursor uint
	if len(requests) > 0 {
		nextCursor = requests[len(requests)-1].ID
	}

	return c.JSON(fiber.Map{
		"prayer_requests": requests,
		"next_cursor":     nextCursor,
	})
}

// ListMine returns the caller's own requests.
// GET /api/prayers/mine
func (h *PrayerHandler) ListMine(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	requests, err := h.prayerService.ListMine(userID, c.QueryInt("limit", 20))
	if err != nil {
		return httpx.Internal(c, "list_prayers_failed")
	}

	return c.JSON(fiber.Map{
		"prayer_requests": requests,
	})
}

// Pray records the caller praying for a request.
// POST /api/prayers/:id/pray
func (h *PrayerHandler) Pray(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	requestID, err := c.ParamsInt("id")
	if err != nil || requestID <= 0 {
		return httpx.BadRequest(c, "invalid_prayer_id", "Invalid prayer request ID")
	}

	request, err := h.prayerService.Pray(uint(requestID), userID)
	if err != nil {
		return httpx.NotFound(c, "prayer_not_found", "Prayer request not found")
	}

	return c.JSON(fiber.Map{
		"prayer_request": request.ToResponse(true),
	})
}

// MarkAnswered flags the caller's own request as answered.
// POST /api/prayers/:id/answered
func (h *PrayerHandler) MarkAnswered(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	requestID, err := c.ParamsInt("id")
	if err != nil || requestID <= 0 {
		return httpx.BadRequest(c, "invalid_prayer_id", "Invalid prayer request ID")
	}

	if err := h.prayerService.MarkAnswered(uint(requestID), userID); err != nil {
		return httpx.NotFound(c, "prayer_not_found", "Prayer request not found")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Delete removes the caller's own request.
// DELETE /api/prayers/:id
func (h *PrayerHandler) Delete(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	requestID, err := c.ParamsInt("id")
	if err != nil || requestID <= 0 {
		return httpx.BadRequest(c, "invalid_prayer_id", "Invalid prayer request ID")
	}

	if err := h.prayerService.Delete(uint(requestID), userID); err != nil {
		return httpx.NotFound(c, "prayer_not_found", "Prayer request not found")
	}
	return c.JSON(fiber.Map{"ok": true})
}
