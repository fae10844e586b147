package middleware

import (
	"log"
	"strings"

	"reviewhub/internal/models"
	"reviewhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Key under which the authenticated account is stored in the request locals.
const CurrentUserKey = "currentUser"

// OptionalAuth resolves the account when a token is present but lets
// anonymous requests through; services decide per-operation whether an
// anonymous actor is acceptable. A malformed or expired token is still
// rejected rather than downgraded to anonymous.
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := userFromHeader(c, authService)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		if user != nil {
			c.Locals(CurrentUserKey, user)
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated account, or nil for anonymous
// requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(CurrentUserKey).(*models.User)
	return user
}

func userFromHeader(c *fiber.Ctx, authService *services.AuthService) (*models.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Authorization header format must be 'Bearer <token>'")
	}
	user, err := authService.UserFromToken(parts[1])
	if err != nil {
		log.Printf("JWT validation failed: %v", err)
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}
	return user, nil
}
