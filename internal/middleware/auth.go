package middleware

import (
	common_api "go-chat/internal/common/api"
	"go-chat/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates JWT tokens and injects user claims into context
func AuthMiddleware(skipAuth bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			// Inject dummy context for dev; the id must stay a valid
			// ObjectID hex so handlers can parse it
			dummyClaims := &utils.UserClaims{
				UserID:   "000000000000000000000001",
				Username: "dev-admin",
				Roles:    []string{"super_admin", "admin", "user"},
			}
			c.Locals(utils.UserClaimsKey, dummyClaims)
			return c.Next()
		}

		token := ""
		authHeader := c.Get("Authorization")
		switch {
		case authHeader != "":
			// Extract token from "Bearer <token>"
			if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
				return common_api.Fail(c, fiber.StatusUnauthorized, "Invalid authorization header format")
			}
			token = authHeader[7:]
		case c.Query("token") != "":
			// Browser websocket clients cannot set headers
			token = c.Query("token")
		default:
			return common_api.Fail(c, fiber.StatusUnauthorized, "Authorization header required")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			return common_api.Fail(c, fiber.StatusUnauthorized, "Invalid token")
		}

		c.Locals(utils.UserClaimsKey, claims)
		return c.Next()
	}
}

// CallerClaims pulls the authenticated user claims injected by AuthMiddleware.
func CallerClaims(c *fiber.Ctx) (*utils.UserClaims, bool) {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return claims, ok
}
