package middleware

import (
	"strings"

	"careconnect-backend/internal/config"
	"careconnect-backend/internal/core/domain"
	"careconnect-backend/internal/pkg/jwt"
	"careconnect-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// extractToken pulls the access token from cookie or bearer header
func extractToken(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// AuthMiddleware creates authentication middleware. It decodes the
// session token into a Principal stored in request locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := extractToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		role, ok := domain.ParseRole(claims.Role)
		if !ok {
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(principalKey, domain.Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   role,
		})

		return c.Next()
	}
}

// GetPrincipal returns the authenticated principal set by AuthMiddleware
func GetPrincipal(c *fiber.Ctx) (domain.Principal, bool) {
	p, ok := c.Locals(principalKey).(domain.Principal)
	return p, ok
}

// RoleMiddleware creates role-based authorization middleware. The
// decision goes through domain.Role.AllowedBy, the single authorization
// rule shared with the route guard.
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := GetPrincipal(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		if !principal.Role.AllowedBy(allowedRoles...) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// PatientOnly middleware allows only PATIENT role
func PatientOnly() fiber.Handler {
	return RoleMiddleware(domain.RolePatient)
}

// OptionalAuth middleware - doesn't require auth but sets the principal
// if a valid token is present (used by the route guard).
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if accessToken := extractToken(c); accessToken != "" {
			if claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret); err == nil {
				if role, ok := domain.ParseRole(claims.Role); ok {
					c.Locals(principalKey, domain.Principal{
						UserID: claims.UserID,
						Email:  claims.Email,
						Role:   role,
					})
				}
			}
		}
		return c.Next()
	}
}
