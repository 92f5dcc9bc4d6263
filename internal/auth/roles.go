package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-portal/internal/domain"
	apperrors "github.com/spec-kit/school-portal/pkg/util"
)

// RequireRole ensures the session has one of the allowed portal roles.
func RequireRole(allowed ...domain.SessionRole) fiber.Handler {
	allowedSet := make(map[domain.SessionRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Session.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures the caller has any portal session.
func RequireAnyRole() fiber.Handler {
	return RequireRole()
}
