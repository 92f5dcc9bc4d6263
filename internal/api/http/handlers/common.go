package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-portal/internal/auth"
	"github.com/spec-kit/school-portal/internal/domain"
)

func sessionPrincipal(c *fiber.Ctx) (domain.Session, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return domain.Session{}, fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	return principal.Session, nil
}

func parseBoolQuery(c *fiber.Ctx, key string, defaultVal bool) bool {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

func invalidPayload() error {
	return fiber.NewError(http.StatusBadRequest, "invalid payload")
}
