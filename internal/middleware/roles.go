package middleware

import (
	common_api "go-chat/internal/common/api"
	common_models "go-chat/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole checks that the caller carries one of the given roles.
// Role checks are re-derived from the request claims on every call and
// never cached across requests.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := CallerClaims(c)
		if !ok {
			return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		for _, role := range roles {
			if claims.HasRole(role) {
				return c.Next()
			}
		}

		return common_api.Fail(c, fiber.StatusForbidden, "Access denied: insufficient role")
	}
}

// RequireAdmin allows admins and super admins
func RequireAdmin() fiber.Handler {
	return RequireRole(common_models.RoleAdmin, common_models.RoleSuperAdmin)
}

// RequireSuperAdmin allows super admins only
func RequireSuperAdmin() fiber.Handler {
	return RequireRole(common_models.RoleSuperAdmin)
}
