package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AkshayEddula/bibleapp-sub000/internal/httpx"
	"github.com/AkshayEddula/bibleapp-sub000/internal/service"
)

type ReelHandler struct {
	reelService   *service.ReelService
	viewerService *service.ViewerService
}

func NewReelHandler(reelService *service.ReelService, viewerService *service.ViewerService) *ReelHandler {
	return &ReelHandler{reelService: reelService, viewerService: viewerService}
}

// OpenViewer starts a viewer session and returns the first feed page.
// POST /api/reels/viewer
func (h *ReelHandler) OpenViewer(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var body struct {
		StartIndex int    `json:"start_index"`
		Theme      string `json:"theme"`
	}
	_ = c.BodyParser(&body)

	sess := h.viewerService.Open(userID, body.StartIndex)

	page, err := h.reelService.Feed(sess, body.Theme, 0, 0)
	if err != nil {
		return httpx.Internal(c, "feed_failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id":  sess.ID,
		"premium":     sess.Premium,
		"free_used":   len(sess.Unlocked),
		"free_limit":  service.DailyFreeLimit,
		"state":       page.State,
		"reels":       page.Reels,
		"next_cursor": page.NextCursor,
	})
}

// GetFeed returns a feed page for an open session.
// GET /api/reels?session_id=...&theme=...&cursor=...
func (h *ReelHandler) GetFeed(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		return httpx.BadRequest(c, "missing_session", "session_id is required")
	}
	sess, err := h.viewerService.Get(sessionID, userID)
	if err != nil {
		return httpx.NotFound(c, "session_not_found", "Viewer session not found")
	}

	cursor := uint(c.QueryInt("cursor", 0))
	limit := c.QueryInt("limit", 20)

	page, err := h.reelService.Feed(sess, c.Query("theme"), cursor, limit)
	if err != nil {
		return httpx.Internal(c, "feed_failed")
	}

	return c.JSON(page)
}

// Visible reports that a reel became the centered one. The response carries
// the unlock outcome and quota so the client can render paywall state.
// POST /api/reels/viewer/:session_id/visible
func (h *ReelHandler) Visible(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	sessionID := strings.TrimSpace(c.Params("session_id"))

	var body struct {
		ReelID uint `json:"reel_id"`
		Index  int  `json:"index"`
	}
	if err := c.BodyParser(&body); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if body.ReelID == 0 {
		return httpx.BadRequest(c, "missing_reel_id", "reel_id is required")
	}

	result, err := h.viewerService.Visible(sessionID, userID, body.ReelID, body.Index)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return httpx.NotFound(c, "session_not_found", "Viewer session not found")
		}
		return httpx.Internal(c, "visible_failed")
	}

	return c.JSON(fiber.Map{
		"locked":       result.Locked,
		"view_emitted": result.ViewEmitted,
		"free_used":    result.FreeUsed,
		"free_limit":   result.FreeLimit,
	})
}

// CloseViewer discards a viewer session.
// DELETE /api/reels/viewer/:session_id
func (h *ReelHandler) CloseViewer(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	sessionID := strings.TrimSpace(c.Params("session_id"))
	if err := h.viewerService.Close(sessionID, userID); err != nil {
		return httpx.NotFound(c, "session_not_found", "Viewer session not found")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// CreateReel adds a reel to the feed. Admin only.
// POST /api/admin/reels
func (h *ReelHandler) CreateReel(c *fiber.Ctx) error {
	var input service.CreateReelInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	reel, err := h.reelService.Create(input)
	if err != nil {
		return httpx.BadRequest(c, "create_reel_failed", err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"reel": reel.ToResponse(false),
	})
}
