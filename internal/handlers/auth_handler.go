package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AkshayEddula/bibleapp-sub000/internal/httpx"
	"github.com/AkshayEddula/bibleapp-sub000/internal/service"
	"github.com/AkshayEddula/bibleapp-sub000/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func cookiesSecure() bool {
	return strings.TrimSpace(os.Getenv("COOKIE_SECURE")) != "false"
}

func setAuthCookies(c *fiber.Ctx, result *service.AuthResponse) {
	secure := cookiesSecure()
	c.Cookie(&fiber.Cookie{
		Name:     "ba_access",
		Value:    result.Token,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
		Expires:  time.Now().Add(service.AccessTokenTTL),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "ba_refresh",
		Value:    result.RefreshToken,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/api/auth",
		Expires:  time.Now().Add(service.RefreshTokenTTL),
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "ba_access", Value: "", HTTPOnly: true, Path: "/", Expires: expired})
	c.Cookie(&fiber.Cookie{Name: "ba_refresh", Value: "", HTTPOnly: true, Path: "/api/auth", Expires: expired})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Email = validation.NormalizeEmail(input.Email)
	input.Username = validation.NormalizeUsername(input.Username)
	if !validation.ValidateEmail(input.Email) {
		return httpx.BadRequest(c, "invalid_email", "Invalid email address")
	}
	if !validation.ValidateUsername(input.Username) {
		return httpx.BadRequest(c, "invalid_username", "Invalid username")
	}
	if !validation.ValidatePassword(input.Password) {
		return httpx.BadRequest(c, "weak_password", "Password is too short")
	}
	input.FullName = validation.TrimAndLimit(input.FullName, 80)

	result, err := h.authService.Register(input)
	if err != nil {
		return httpx.BadRequest(c, "register_failed", err.Error())
	}

	setAuthCookies(c, result)
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Email = validation.NormalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return httpx.BadRequest(c, "missing_credentials", "Email and password are required")
	}

	result, err := h.authService.Login(input)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_credentials", "Invalid credentials")
	}

	setAuthCookies(c, result)
	return c.JSON(result)
}

// Refresh rotates the refresh token. The token may arrive in the body or the
// HttpOnly cookie; browser clients only have the cookie.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.BodyParser(&body)

	raw := strings.TrimSpace(body.RefreshToken)
	if raw == "" {
		raw = c.Cookies("ba_refresh")
	}
	if raw == "" {
		return httpx.Unauthorized(c, "missing_refresh_token", "Missing refresh token")
	}

	result, err := h.authService.Refresh(raw)
	if err != nil {
		clearAuthCookies(c)
		return httpx.Unauthorized(c, "invalid_refresh_token", "Invalid or expired refresh token")
	}

	setAuthCookies(c, result)
	return c.JSON(result)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.BodyParser(&body)

	raw := strings.TrimSpace(body.RefreshToken)
	if raw == "" {
		raw = c.Cookies("ba_refresh")
	}
	if err := h.authService.Logout(raw); err != nil {
		return httpx.Internal(c, "logout_failed")
	}

	clearAuthCookies(c)
	return c.JSON(fiber.Map{"ok": true})
}

// CSRF issues a double-submit token: readable cookie plus response body.
func (h *AuthHandler) CSRF(c *fiber.Ctx) error {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return httpx.Internal(c, "csrf_failed")
	}
	token := hex.EncodeToString(buf)

	c.Cookie(&fiber.Cookie{
		Name:     "ba_csrf",
		Value:    token,
		HTTPOnly: false,
		Secure:   cookiesSecure(),
		SameSite: "Lax",
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return c.JSON(fiber.Map{"csrf_token": token})
}
