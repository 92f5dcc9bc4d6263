package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-portal/internal/api/http/handlers"
	"github.com/spec-kit/school-portal/internal/auth"
	"github.com/spec-kit/school-portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Site           *handlers.SiteHandler
	Admin          *handlers.AdminHandler
	Inbox          *handlers.InboxHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/site/branding", cfg.Site.Branding)
	prefs := app.Group("/preferences")
	prefs.Get("/theme", cfg.Site.Theme)
	prefs.Put("/theme", cfg.Site.SetTheme)
	prefs.Get("/parent", cfg.Site.RememberedParent)
	prefs.Delete("/parent", cfg.Site.ForgetParent)

	authGroup := app.Group("/auth")
	authGroup.Post("/parent/login", cfg.Auth.ParentLogin)
	authGroup.Post("/staff/login", cfg.Auth.StaffLogin)
	authGroup.Post("/staff/join", cfg.Auth.StaffJoin)
	authGroup.Post("/admin/login", cfg.Auth.AdminLogin)

	protected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	protected.Get("/session", cfg.Auth.Session)
	protected.Post("/logout", cfg.Auth.Logout)

	app.Get("/directory", cfg.AuthMiddleware.Handle, auth.RequireAnyRole(), cfg.Site.Directory)

	parent := app.Group("/parent", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.SessionRoleParent))
	parent.Post("/voice-rooms", cfg.Inbox.RequestVoiceRoom)
	parent.Post("/emails", cfg.Inbox.SendInquiry)

	teacher := app.Group("/teacher", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.SessionRoleTeacher))
	teacher.Get("/inbox", cfg.Inbox.Inbox)
	teacher.Post("/inbox/voice-rooms/:id/accept", cfg.Inbox.AcceptVoiceRoom)
	teacher.Post("/inbox/voice-rooms/:id/reject", cfg.Inbox.RejectVoiceRoom)
	teacher.Post("/inbox/emails/:id/read", cfg.Inbox.MarkRead)
	teacher.Post("/inbox/emails/:id/reply", cfg.Inbox.Reply)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.SessionRoleAdmin))
	admin.Get("/staff", cfg.Admin.ListStaff)
	admin.Get("/staff/pending", cfg.Admin.PendingStaff)
	admin.Post("/staff/:id/approve", cfg.Admin.ApproveStaff)
	admin.Delete("/staff/:id", cfg.Admin.RejectStaff)
	admin.Post("/staff/:id/freeze", cfg.Admin.ToggleFreeze)
	admin.Put("/staff/:id/role", cfg.Admin.SetRole)
	admin.Get("/settings", cfg.Admin.Settings)
	admin.Patch("/settings", cfg.Admin.UpdateSettings)
	admin.Get("/security", cfg.Admin.Security)
	admin.Put("/security", cfg.Admin.UpdateSecurity)
	admin.Post("/security/secondary-emails", cfg.Admin.AddSecondaryEmail)
	admin.Delete("/security/secondary-emails/:email", cfg.Admin.RemoveSecondaryEmail)
	admin.Get("/activity", cfg.Admin.Activity)
	admin.Get("/metrics", cfg.Admin.Metrics)
}
