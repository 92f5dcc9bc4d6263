package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-portal/internal/api/dto"
	"github.com/spec-kit/school-portal/internal/service"
)

// SiteHandler serves the shared layout data, the public directory and device preferences.
type SiteHandler struct {
	settings    *service.SettingsService
	directory   *service.DirectoryService
	preferences *service.PreferencesService
}

// NewSiteHandler constructs handler.
func NewSiteHandler(settings *service.SettingsService, directory *service.DirectoryService, preferences *service.PreferencesService) *SiteHandler {
	return &SiteHandler{settings: settings, directory: directory, preferences: preferences}
}

// Branding handles GET /site/branding.
func (h *SiteHandler) Branding(c *fiber.Ctx) error {
	branding, err := h.settings.Branding(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBrandingResponse(branding)})
}

// Directory handles GET /directory.
func (h *SiteHandler) Directory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	staff, err := h.directory.PublicDirectory(ctx)
	if err != nil {
		return err
	}
	settings, err := h.settings.Get(ctx)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DirectoryResponse{
		Staff:   dto.NewStaffList(staff),
		Actions: settings.VisibleActions(),
	}})
}

// Theme handles GET /preferences/theme.
func (h *SiteHandler) Theme(c *fiber.Ctx) error {
	theme, err := h.preferences.Theme(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ThemeResponse{Theme: theme}})
}

// SetTheme handles PUT /preferences/theme.
func (h *SiteHandler) SetTheme(c *fiber.Ctx) error {
	var req dto.ThemeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	theme, err := h.preferences.SetTheme(c.UserContext(), req.Theme)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ThemeResponse{Theme: theme}})
}

// RememberedParent handles GET /preferences/parent.
func (h *SiteHandler) RememberedParent(c *fiber.Ctx) error {
	parent, err := h.preferences.RememberedParent(c.UserContext())
	if err != nil {
		return err
	}
	var resp dto.RememberedParentResponse
	if parent != nil {
		resp = dto.RememberedParentResponse{Email: parent.Email, StudentName: parent.StudentName}
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ForgetParent handles DELETE /preferences/parent.
func (h *SiteHandler) ForgetParent(c *fiber.Ctx) error {
	if err := h.preferences.ForgetParent(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
