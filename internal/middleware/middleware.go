// Package middleware guards admin routes. Every protected endpoint passes
// through a single role-parameterized token check instead of per-handler
// role string comparisons.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/asre459/menna/internal/models"
	"github.com/asre459/menna/internal/service"
)

const claimsKey = "claims"

// RequireRole verifies the bearer token and, when requiredRole is non-empty,
// that the token's role claim matches. Valid claims are stored in the request
// locals for handlers.
func RequireRole(jwtService *service.JWTService, requiredRole string) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No token, authorization denied",
			})
		}

		claims, err := jwtService.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token is not valid",
			})
		}

		if requiredRole != "" && claims.Role != requiredRole {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromCtx returns the verified claims placed by RequireRole, or nil on
// an unguarded route.
func ClaimsFromCtx(c fiber.Ctx) *models.Claims {
	claims, _ := c.Locals(claimsKey).(*models.Claims)
	return claims
}
