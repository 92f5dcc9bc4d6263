package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/api/http/handlers"
	"github.com/spec-kit/school-portal/internal/auth"
	"github.com/spec-kit/school-portal/internal/config"
	"github.com/spec-kit/school-portal/internal/events"
	"github.com/spec-kit/school-portal/internal/observability"
	"github.com/spec-kit/school-portal/internal/persistence"
	"github.com/spec-kit/school-portal/internal/repository"
	"github.com/spec-kit/school-portal/internal/service"
	"github.com/spec-kit/school-portal/internal/worker"
)

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	kv := persistence.NewMemoryStore()
	staffRepo := repository.NewStaffRepository(kv, logger)
	adminAuthRepo := repository.NewAdminAuthRepository(kv, config.AdminConfig{PrimaryEmail: "a@b.com", PrimaryPassword: "X1"}, logger)
	preferencesRepo := repository.NewPreferencesRepository(kv, logger)

	dispatcher := events.NewInMemoryDispatcher(logger)
	metrics := observability.NewMetrics()
	tokens := auth.NewTokenManager("test-secret", 30)
	sessions := auth.NewSessionRegistry(tokens.TTL(), logger)
	activity := service.NewActivityService(20)
	worker.StartNotificationWorker(dispatcher, service.NewNotificationService(dispatcher, logger, config.NotificationConfig{}, nil), activity)

	directory := service.NewDirectoryService(service.DirectoryDependencies{StaffRepo: staffRepo, Dispatcher: dispatcher, Logger: logger})
	settings := service.NewSettingsService(repository.NewSettingsRepository(kv, logger), dispatcher, logger)
	authService := service.NewAuthService(service.AuthDependencies{
		AdminAuthRepo:   adminAuthRepo,
		StaffRepo:       staffRepo,
		PreferencesRepo: preferencesRepo,
		Sessions:        sessions,
		Tokens:          tokens,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	inbox := service.NewInboxService(service.InboxDependencies{
		InboxRepo:  repository.NewInboxRepository(kv, logger),
		StaffRepo:  staffRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health: handlers.NewHealthHandler("school-portal", "test", kv, nil, nil),
		Auth:   handlers.NewAuthHandler(authService, directory),
		Site:   handlers.NewSiteHandler(settings, directory, service.NewPreferencesService(preferencesRepo)),
		Admin: handlers.NewAdminHandler(handlers.AdminDependencies{
			Directory: directory,
			Settings:  settings,
			AdminAuth: service.NewAdminAuthService(adminAuthRepo, dispatcher, logger),
			Activity:  activity,
			Metrics:   metrics,
		}),
		Inbox:          handlers.NewInboxHandler(inbox),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, sessions),
	})
	return app
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type authData struct {
	Token   string `json:"token"`
	Session struct {
		ID          string `json:"id"`
		Role        string `json:"role"`
		DisplayName string `json:"display_name"`
		Class       string `json:"class"`
	} `json:"session"`
}

func login(t *testing.T, app *fiber.App, path string, body any) authData {
	t.Helper()
	status, env := call(t, app, nethttp.MethodPost, path, "", body)
	require.Equal(t, nethttp.StatusCreated, status)
	return decode[authData](t, env)
}

func TestHealthAndBranding(t *testing.T) {
	app := newTestServer(t)

	status, _ := call(t, app, nethttp.MethodGet, "/health/live", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)

	status, _ = call(t, app, nethttp.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)

	status, env := call(t, app, nethttp.MethodGet, "/site/branding", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	branding := decode[map[string]any](t, env)
	assert.Equal(t, "الابتدائية 141 بجدة", branding["school_label"])

	status, env = call(t, app, nethttp.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, nethttp.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestStaffLoginResolvesRoles(t *testing.T) {
	app := newTestServer(t)

	admin := login(t, app, "/auth/staff/login", map[string]string{"email": " A@B.COM ", "password": "X1"})
	assert.Equal(t, "admin", admin.Session.Role)
	assert.Equal(t, "مدير النظام", admin.Session.DisplayName)

	teacher := login(t, app, "/auth/staff/login", map[string]string{"email": "a@b.com", "password": "wrong", "name": "Huda"})
	assert.Equal(t, "teacher", teacher.Session.Role)
	assert.Equal(t, "Huda", teacher.Session.DisplayName)

	status, env := call(t, app, nethttp.MethodPost, "/auth/admin/login", "", map[string]string{"email": "a@b.com", "password": "wrong"})
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	status, env = call(t, app, nethttp.MethodPost, "/auth/staff/login", "", map[string]string{"email": "t@x.com"})
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	status, env = call(t, app, nethttp.MethodGet, "/auth/session", teacher.Token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "teacher", decode[map[string]any](t, env)["role"])

	status, _ = call(t, app, nethttp.MethodPost, "/auth/logout", teacher.Token, nil)
	assert.Equal(t, nethttp.StatusOK, status)
	status, _ = call(t, app, nethttp.MethodGet, "/auth/session", teacher.Token, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, status)
}

func TestRoleGating(t *testing.T) {
	app := newTestServer(t)
	parent := login(t, app, "/auth/parent/login", map[string]any{
		"email": "p@home.sa", "student_name": "Rima", "level": "3", "section": "A", "remember": true,
	})
	assert.Equal(t, "3 / A", parent.Session.Class)

	status, _ := call(t, app, nethttp.MethodGet, "/admin/staff", parent.Token, nil)
	assert.Equal(t, nethttp.StatusForbidden, status)
	status, _ = call(t, app, nethttp.MethodGet, "/teacher/inbox", parent.Token, nil)
	assert.Equal(t, nethttp.StatusForbidden, status)
	status, _ = call(t, app, nethttp.MethodGet, "/admin/staff", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, status)

	status, env := call(t, app, nethttp.MethodGet, "/preferences/parent", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "Rima", decode[map[string]string](t, env)["student_name"])
}

func TestAdminStaffLifecycle(t *testing.T) {
	app := newTestServer(t)
	admin := login(t, app, "/auth/admin/login", map[string]string{"email": "a@b.com", "password": "X1"})

	status, env := call(t, app, nethttp.MethodPost, "/auth/staff/join", "", map[string]string{
		"name": "Huda", "email": "huda@school.edu.sa", "subject": "Science",
	})
	require.Equal(t, nethttp.StatusAccepted, status)
	joined := decode[map[string]any](t, env)
	id := joined["id"].(string)
	assert.Equal(t, "pending", joined["status"])

	status, env = call(t, app, nethttp.MethodGet, "/admin/staff/pending", admin.Token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	status, env = call(t, app, nethttp.MethodPost, "/admin/staff/"+id+"/freeze", admin.Token, nil)
	assert.Equal(t, nethttp.StatusConflict, status)

	status, env = call(t, app, nethttp.MethodPost, "/admin/staff/"+id+"/approve", admin.Token, map[string]string{"role": "supervisor"})
	require.Equal(t, nethttp.StatusOK, status)
	approved := decode[map[string]any](t, env)
	assert.Equal(t, "active", approved["status"])
	assert.Equal(t, "supervisor", approved["role"])

	status, _ = call(t, app, nethttp.MethodPost, "/admin/staff/missing/approve", admin.Token, nil)
	assert.Equal(t, nethttp.StatusNotFound, status)

	status, env = call(t, app, nethttp.MethodPut, "/admin/staff/"+id+"/role", admin.Token, map[string]string{"role": "janitor"})
	assert.Equal(t, nethttp.StatusBadRequest, status)

	status, env = call(t, app, nethttp.MethodDelete, "/admin/staff/"+id, admin.Token, nil)
	assert.Equal(t, nethttp.StatusPreconditionRequired, status)
	assert.Equal(t, "CONFIRMATION_REQUIRED", env.Error.Code)

	status, _ = call(t, app, nethttp.MethodDelete, "/admin/staff/"+id+"?confirm=true", admin.Token, nil)
	assert.Equal(t, nethttp.StatusOK, status)

	status, env = call(t, app, nethttp.MethodGet, "/admin/staff", admin.Token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 6)

	status, env = call(t, app, nethttp.MethodGet, "/admin/activity", admin.Token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	feed := decode[[]map[string]any](t, env)
	require.NotEmpty(t, feed)
	assert.Equal(t, "staff_rejected", feed[0]["type"])
}

func TestAdminSettingsDriveDirectoryActions(t *testing.T) {
	app := newTestServer(t)
	admin := login(t, app, "/auth/admin/login", map[string]string{"email": "a@b.com", "password": "X1"})

	status, env := call(t, app, nethttp.MethodPatch, "/admin/settings", admin.Token, map[string]any{
		"school_name": "Primary 12", "enable_email": false,
	})
	require.Equal(t, nethttp.StatusOK, status)
	settings := decode[map[string]any](t, env)
	assert.Equal(t, "Primary 12", settings["school_name"])
	assert.Equal(t, "وزارة التعليم", settings["ministry_name"])

	status, _ = call(t, app, nethttp.MethodPatch, "/admin/settings", admin.Token, map[string]any{"primary_color": "orange"})
	assert.Equal(t, nethttp.StatusBadRequest, status)

	status, env = call(t, app, nethttp.MethodGet, "/site/branding", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "Primary 12", decode[map[string]any](t, env)["school_label"])

	status, env = call(t, app, nethttp.MethodGet, "/directory", admin.Token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	directory := decode[struct {
		Staff   []map[string]any `json:"staff"`
		Actions []string         `json:"actions"`
	}](t, env)
	assert.Len(t, directory.Staff, 6)
	assert.Equal(t, []string{"voice_room", "voice_recording"}, directory.Actions)
}

func TestAdminSecurityGrantsSecondaryLogin(t *testing.T) {
	app := newTestServer(t)
	admin := login(t, app, "/auth/admin/login", map[string]string{"email": "a@b.com", "password": "X1"})

	status, env := call(t, app, nethttp.MethodPost, "/admin/security/secondary-emails", admin.Token, map[string]string{"email": "c@d.com"})
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, []any{"c@d.com"}, decode[map[string]any](t, env)["secondary_emails"])

	secondary := login(t, app, "/auth/staff/login", map[string]string{"email": "C@D.com", "password": "X1"})
	assert.Equal(t, "admin", secondary.Session.Role)

	status, env = call(t, app, nethttp.MethodDelete, "/admin/security/secondary-emails/c@d.com", admin.Token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Empty(t, decode[map[string]any](t, env)["secondary_emails"])

	fallback := login(t, app, "/auth/staff/login", map[string]string{"email": "c@d.com", "password": "X1", "name": "Guest"})
	assert.Equal(t, "teacher", fallback.Session.Role)
}

func TestParentToTeacherInbox(t *testing.T) {
	app := newTestServer(t)
	parent := login(t, app, "/auth/parent/login", map[string]any{
		"email": "p@home.sa", "student_name": "Rima", "level": "3", "section": "A",
	})
	teacher := login(t, app, "/auth/staff/login", map[string]string{
		"email": "noura.a@school.edu.sa", "password": "any", "name": "Noura",
	})

	status, env := call(t, app, nethttp.MethodPost, "/parent/voice-rooms", parent.Token, map[string]string{"staff_id": "1"})
	require.Equal(t, nethttp.StatusCreated, status)
	roomID := decode[map[string]any](t, env)["id"].(string)

	status, env = call(t, app, nethttp.MethodPost, "/parent/emails", parent.Token, map[string]string{
		"staff_id": "1", "subject": "Homework", "content": "Page 4?",
	})
	require.Equal(t, nethttp.StatusCreated, status)
	inquiryID := decode[map[string]any](t, env)["id"].(string)

	status, env = call(t, app, nethttp.MethodGet, "/teacher/inbox", teacher.Token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	inbox := decode[struct {
		VoiceRooms []map[string]any `json:"voice_rooms"`
		Emails     []map[string]any `json:"emails"`
	}](t, env)
	assert.Len(t, inbox.VoiceRooms, 1)
	assert.Len(t, inbox.Emails, 1)

	status, env = call(t, app, nethttp.MethodPost, "/teacher/inbox/voice-rooms/"+roomID+"/accept", teacher.Token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "accepted", decode[map[string]any](t, env)["status"])

	status, env = call(t, app, nethttp.MethodPost, "/teacher/inbox/emails/"+inquiryID+"/reply", teacher.Token, map[string]string{"reply": "Yes"})
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "replied", decode[map[string]any](t, env)["status"])

	status, _ = call(t, app, nethttp.MethodPost, "/parent/voice-rooms", parent.Token, map[string]string{"staff_id": "missing"})
	assert.Equal(t, nethttp.StatusNotFound, status)
}

func TestThemePreference(t *testing.T) {
	app := newTestServer(t)

	status, env := call(t, app, nethttp.MethodGet, "/preferences/theme", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "light", decode[map[string]string](t, env)["theme"])

	status, _ = call(t, app, nethttp.MethodPut, "/preferences/theme", "", map[string]string{"theme": "dark"})
	require.Equal(t, nethttp.StatusOK, status)

	status, env = call(t, app, nethttp.MethodGet, "/preferences/theme", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "dark", decode[map[string]string](t, env)["theme"])

	status, _ = call(t, app, nethttp.MethodPut, "/preferences/theme", "", map[string]string{"theme": "neon"})
	assert.Equal(t, nethttp.StatusBadRequest, status)
}
