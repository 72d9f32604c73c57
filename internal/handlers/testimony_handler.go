package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AkshayEddula/bibleapp-sub000/internal/httpx"
	"github.com/AkshayEddula/bibleapp-sub000/internal/service"
	"github.com/AkshayEddula/bibleapp-sub000/internal/validation"
)

type TestimonyHandler struct {
	testimonyService *service.TestimonyService
}

func NewTestimonyHandler(testimonyService *service.TestimonyService) *TestimonyHandler {
	return &TestimonyHandler{testimonyService: testimonyService}
}

// Create posts a testimony.
// POST /api/testimonies
func (h *TestimonyHandler) Create(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input service.CreateTestimonyInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if !validation.ValidateClientID(input.ClientID) {
		return httpx.BadRequest(c, "invalid_client_id", "client_id must be a UUID")
	}
	input.Title = validation.TrimAndLimit(input.Title, 120)
	input.Content = validation.TrimAndLimit(input.Content, validation.MaxContentLength())

	testimony, err := h.testimonyService.Create(userID, input)
	if err != nil {
		return httpx.BadRequest(c, "create_testimony_failed", err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"testimony": testimony.ToResponse(false),
	})
}

// List returns a page of testimonies.
// GET /api/testimonies?cursor=...&limit=...
func (h *TestimonyHandler) List(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	cursor := uint(c.QueryInt("cursor", 0))
	limit := c.QueryInt("limit", 20)

	testimonies, err := h.testimonyService.List(userID, cursor, limit)
	if err != nil {
		return httpx.Internal(c, "list_testimonies_failed")
	}

	var nextCursor uint
	if len(testimonies) > 0 {
		nextCursor = testimonies[len(testimonies)-1].ID
	}

	return c.JSON(fiber.Map{
		"testimonies": testimonies,
		"next_cursor": nextCursor,
	})
}

// Amen records an amen on a testimony.
// POST /api/testimonies/:id/amen
func (h *TestimonyHandler) Amen(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	testimonyID, err := c.ParamsInt("id")
	if err != nil || testimonyID <= 0 {
		return httpx.BadRequest(c, "invalid_testimony_id", "Invalid testimony ID")
	}

	testimony, err := h.testimonyService.Amen(uint(testimonyID), userID)
	if err != nil {
		return httpx.NotFound(c, "testimony_not_found", "Testimony not found")
	}

	return c.JSON(fiber.Map{
		"testimony": testimony.ToResponse(true),
	})
}

// Delete removes the caller's own testimony.
// DELETE /api/testimonies/:id
func (h *TestimonyHandler) Delete(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	testimonyID, err := c.ParamsInt("id")
	if err != nil || testimonyID <= 0 {
		return httpx.BadRequest(c, "invalid_testimony_id", "Invalid testimony ID")
	}

	if err := h.testimonyService.Delete(uint(testimonyID), userID); err != nil {
		return httpx.NotFound(c, "testimony_not_found", "Testimony not found")
	}
	return c.JSON(fiber.Map{"ok": true})
}
