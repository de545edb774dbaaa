package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"portfolio/internal/domain"
	"portfolio/internal/service/auth"
)

const (
	SessionCookieName = "session"

	AdminEmailContextKey   = "admin_email"
	SessionTokenContextKey = "session_token"

	unauthorizedMessage = "Unauthorized: Admin access required"
)

// AdminRequired guards the admin REST routes. The session token is read
// from the session cookie, falling back to a bearer token.
func AdminRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authenticate(c, authService) {
			return Unauthorized(unauthorizedMessage)
		}
		return c.Next()
	}
}

// AdminAction guards the ingest endpoints, which answer with the action
// envelope instead of a bare error.
func AdminAction(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authenticate(c, authService) {
			var errs domain.ValidationErrors
			errs.Add("auth", "Authentication failed")
			return c.Status(fiber.StatusUnauthorized).JSON(domain.Failed[struct{}](unauthorizedMessage, errs))
		}
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, authService auth.Service) bool {
	token := SessionToken(c)
	if token == "" {
		return false
	}

	claims, err := authService.Validate(c.UserContext(), token)
	if err != nil {
		return false
	}

	c.Locals(AdminEmailContextKey, claims.Email)
	c.Locals(SessionTokenContextKey, token)
	return true
}

func SessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookieName); token != "" {
		return token
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func GetAdminEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(AdminEmailContextKey).(string)
	return email
}
