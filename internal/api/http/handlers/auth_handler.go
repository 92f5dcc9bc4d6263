package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-portal/internal/api/dto"
	"github.com/spec-kit/school-portal/internal/service"
)

// AuthHandler exposes the three login screens and session endpoints.
type AuthHandler struct {
	authService *service.AuthService
	directory   *service.DirectoryService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, directory *service.DirectoryService) *AuthHandler {
	return &AuthHandler{authService: authService, directory: directory}
}

// ParentLogin handles POST /auth/parent/login.
func (h *AuthHandler) ParentLogin(c *fiber.Ctx) error {
	var req dto.ParentLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	result, err := h.authService.LoginParent(c.UserContext(), req.ToParentLogin())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAuthResponse(result)})
}

// StaffLogin handles POST /auth/staff/login. Admin credentials open an admin session.
func (h *AuthHandler) StaffLogin(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	result, err := h.authService.LoginStaff(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAuthResponse(result)})
}

// AdminLogin handles POST /auth/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	result, err := h.authService.LoginAdmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAuthResponse(result)})
}

// StaffJoin handles POST /auth/staff/join, queueing a record for admin approval.
func (h *AuthHandler) StaffJoin(c *fiber.Ctx) error {
	var req dto.StaffJoinRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	member, err := h.directory.Submit(c.UserContext(), req.ToStaffMember())
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": dto.NewStaffResponse(*member)})
}

// Session handles GET /auth/session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(session)})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session, err := sessionPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.UserContext(), session.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "logged_out"}})
}
