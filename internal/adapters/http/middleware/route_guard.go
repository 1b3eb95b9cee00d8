package middleware

import (
	"strings"

	"careconnect-backend/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// Redirect targets for the page-path policy
const (
	signInPath = "/auth/signin"
	homePath   = "/"
)

// RedirectFor evaluates the path-based redirect policy, first match
// wins. It returns the redirect target and true when the request must
// be steered away. principal is nil for unauthenticated requests.
//
// /patient* is restricted to PATIENT; the policy lives here and
// nowhere else.
func RedirectFor(path string, principal *domain.Principal) (string, bool) {
	switch {
	case path == homePath,
		strings.HasPrefix(path, "/auth"),
		strings.HasPrefix(path, "/api/auth"):
		return "", false
	case strings.HasPrefix(path, "/admin"):
		return redirectUnless(principal, domain.RoleAdmin)
	case strings.HasPrefix(path, "/doctor"):
		return redirectUnless(principal, domain.RoleDoctor, domain.RoleAdmin)
	case strings.HasPrefix(path, "/patient"):
		return redirectUnless(principal, domain.RolePatient)
	}
	return "", false
}

func redirectUnless(principal *domain.Principal, allowed ...domain.Role) (string, bool) {
	if principal == nil {
		return signInPath, true
	}
	if !principal.Role.AllowedBy(allowed...) {
		return homePath, true
	}
	return "", false
}

// RouteGuard applies the page-path redirect policy before any handler
// runs. It relies on OptionalAuth having decoded the token, if any.
func RouteGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var principal *domain.Principal
		if p, ok := GetPrincipal(c); ok {
			principal = &p
		}

		if target, redirect := RedirectFor(c.Path(), principal); redirect {
			return c.Redirect(target, fiber.StatusFound)
		}

		return c.Next()
	}
}
