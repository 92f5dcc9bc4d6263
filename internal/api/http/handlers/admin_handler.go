package handlers

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-portal/internal/api/dto"
	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/observability"
	"github.com/spec-kit/school-portal/internal/service"
	apperrors "github.com/spec-kit/school-portal/pkg/util"
)

// AdminHandler exposes the admin dashboard tabs.
type AdminHandler struct {
	directory *service.DirectoryService
	settings  *service.SettingsService
	adminAuth *service.AdminAuthService
	activity  *service.ActivityService
	metrics   *observability.Metrics
}

// AdminDependencies bundles the services behind the dashboard.
type AdminDependencies struct {
	Directory *service.DirectoryService
	Settings  *service.SettingsService
	AdminAuth *service.AdminAuthService
	Activity  *service.ActivityService
	Metrics   *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{
		directory: deps.Directory,
		settings:  deps.Settings,
		adminAuth: deps.AdminAuth,
		activity:  deps.Activity,
		metrics:   deps.Metrics,
	}
}

// ListStaff handles GET /admin/staff. status=reviewed hides the approval queue.
func (h *AdminHandler) ListStaff(c *fiber.Ctx) error {
	var (
		staff []domain.StaffMember
		err   error
	)
	switch c.Query("status") {
	case "reviewed":
		staff, err = h.directory.Reviewed(c.UserContext())
	default:
		staff, err = h.directory.List(c.UserContext())
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffList(staff)})
}

// PendingStaff handles GET /admin/staff/pending.
func (h *AdminHandler) PendingStaff(c *fiber.Ctx) error {
	staff, err := h.directory.PendingQueue(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffList(staff)})
}

// ApproveStaff handles POST /admin/staff/:id/approve. The role defaults to teacher.
func (h *AdminHandler) ApproveStaff(c *fiber.Ctx) error {
	admin, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.StaffRoleRequest
	if len(c.Body()) > 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
	}
	if req.Role == "" {
		req.Role = domain.StaffRoleTeacher
	}
	id := c.Params("id")
	member, err := h.directory.Approve(c.UserContext(), admin, id, req.Role)
	return respondStaff(c, member, id, err)
}

// RejectStaff handles DELETE /admin/staff/:id. The caller confirms with confirm=true.
func (h *AdminHandler) RejectStaff(c *fiber.Ctx) error {
	admin, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	confirmed := parseBoolQuery(c, "confirm", false)
	id := c.Params("id")
	member, err := h.directory.Reject(c.UserContext(), admin, id, func(context.Context, domain.StaffMember) bool {
		return confirmed
	})
	return respondStaff(c, member, id, err)
}

// ToggleFreeze handles POST /admin/staff/:id/freeze.
func (h *AdminHandler) ToggleFreeze(c *fiber.Ctx) error {
	admin, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	member, err := h.directory.ToggleFreeze(c.UserContext(), admin, id)
	return respondStaff(c, member, id, err)
}

// SetRole handles PUT /admin/staff/:id/role.
func (h *AdminHandler) SetRole(c *fiber.Ctx) error {
	admin, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.StaffRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id := c.Params("id")
	member, err := h.directory.SetRole(c.UserContext(), admin, id, req.Role)
	return respondStaff(c, member, id, err)
}

// Settings handles GET /admin/settings.
func (h *AdminHandler) Settings(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingsResponse(settings)})
}

// UpdateSettings handles PATCH /admin/settings.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	admin, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateSettingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	settings, err := h.settings.Set(c.UserContext(), admin, req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingsResponse(settings)})
}

// Security handles GET /admin/security.
func (h *AdminHandler) Security(c *fiber.Ctx) error {
	creds, err := h.adminAuth.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSecurityResponse(creds)})
}

// UpdateSecurity handles PUT /admin/security.
func (h *AdminHandler) UpdateSecurity(c *fiber.Ctx) error {
	admin, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.SecurityUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	creds, err := h.adminAuth.Set(c.UserContext(), admin, req.ToAdminAuth())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSecurityResponse(creds)})
}

// AddSecondaryEmail handles POST /admin/security/secondary-emails.
func (h *AdminHandler) AddSecondaryEmail(c *fiber.Ctx) error {
	admin, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.SecondaryEmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	creds, err := h.adminAuth.AddSecondaryEmail(c.UserContext(), admin, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSecurityResponse(creds)})
}

// RemoveSecondaryEmail handles DELETE /admin/security/secondary-emails/:email.
func (h *AdminHandler) RemoveSecondaryEmail(c *fiber.Ctx) error {
	admin, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return invalidPayload()
	}
	creds, err := h.adminAuth.RemoveSecondaryEmail(c.UserContext(), admin, email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSecurityResponse(creds)})
}

// Activity handles GET /admin/activity.
func (h *AdminHandler) Activity(c *fiber.Ctx) error {
	limit := parseIntQuery(c, "limit", 20)
	return c.JSON(fiber.Map{"data": dto.NewActivityList(h.activity.Recent(limit))})
}

// Metrics handles GET /admin/metrics.
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.metrics.Snapshot()})
}

// respondStaff renders a lifecycle result. A nil member means the id matched nothing.
func respondStaff(c *fiber.Ctx, member *domain.StaffMember, id string, err error) error {
	if err != nil {
		return err
	}
	if member == nil {
		return apperrors.NewNotFound("staff member", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffResponse(*member)})
}
