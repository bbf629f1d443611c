package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/auth"
)

// identityKey is the request-local slot carrying the verified claims.
const identityKey = "identity"

// Authenticate validates the bearer token and attaches the verified
// claims to the request. Missing, malformed, mis-signed and expired
// tokens all produce the same 401.
func Authenticate(tm *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Access denied",
			})
		}

		claims, err := tm.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
			})
		}

		c.Locals(identityKey, claims)
		return c.Next()
	}
}

// Authorize gates the route behind the permission matrix. Must run
// after Authenticate; a request without attached claims is denied.
func Authorize(action auth.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(identityKey).(*auth.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Access denied",
			})
		}

		if !auth.HasPermission(claims.Role, action) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Insufficient permissions",
			})
		}
		return c.Next()
	}
}

// Identity returns the claims Authenticate attached to the request,
// or nil when the route is unauthenticated.
func Identity(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(identityKey).(*auth.Claims)
	return claims
}
