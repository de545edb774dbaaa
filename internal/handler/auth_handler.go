package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"portfolio/internal/domain"
	"portfolio/internal/middleware"
	"portfolio/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
	secure      bool
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// WithSecureCookie marks the session cookie Secure; set in production.
func (h *AuthHandler) WithSecureCookie(secure bool) *AuthHandler {
	h.secure = secure
	return h
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	session, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return middleware.Unauthorized("Invalid email or password")
		}
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  time.Unix(session.ExpiresAt, 0),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(session)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.SessionToken(c)); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return middleware.Unauthorized("Unauthorized: Admin access required")
		}
		return err
	}

	c.ClearCookie(middleware.SessionCookieName)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"email": middleware.GetAdminEmail(c)})
}
