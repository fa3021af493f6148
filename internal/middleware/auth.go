package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/epkadmin/internal/models"
	"github.com/example/epkadmin/internal/services"
)

// TokenCookie is the cookie that carries the session token.
const TokenCookie = "token"

const userContextKey = "currentUser"

// Authenticator resolves a session token to its account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.AdminUser, error)
}

// Authenticate loads the session user into context. The token cookie takes
// precedence over an Authorization bearer header.
func Authenticate(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.Authenticate(c.UserContext(), sessionToken(c))
		if err != nil {
			return err
		}

		c.Locals(userContextKey, user)
		return c.Next()
	}
}

func sessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(TokenCookie); token != "" {
		return token
	}

	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequireVerified rejects accounts that have not confirmed their email.
func RequireVerified() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return services.ErrTokenMissing
		}
		if !user.Verified {
			return services.ErrUnverified
		}
		return c.Next()
	}
}

// RequireAdmin rejects accounts whose role is not admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return services.ErrTokenMissing
		}
		if !user.IsAdmin() {
			return services.ErrAdminRequired
		}
		return c.Next()
	}
}

// CurrentUser returns the account loaded by Authenticate.
func CurrentUser(c *fiber.Ctx) (*models.AdminUser, bool) {
	user, ok := c.Locals(userContextKey).(*models.AdminUser)
	return user, ok && user != nil
}
