package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/auth"
	"github.com/spec-kit/school-portal/internal/config"
	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/events"
	"github.com/spec-kit/school-portal/internal/persistence"
	"github.com/spec-kit/school-portal/internal/repository"
)

var (
	adminActor   = domain.Session{Role: domain.SessionRoleAdmin, DisplayName: domain.AdminDisplayName}
	teacherActor = domain.Session{Role: domain.SessionRoleTeacher, DisplayName: "Noura", Email: "noura.a@school.edu.sa"}
	parentActor  = domain.Session{Role: domain.SessionRoleParent, Email: "p@home.sa", StudentName: "Rima", Class: "3 / A"}
)

// fixture wires every service over one in-memory key-value area.
type fixture struct {
	kv         *persistence.MemoryStore
	dispatcher events.Dispatcher
	staffRepo  repository.StaffRepository
	prefsRepo  repository.PreferencesRepository
	adminRepo  repository.AdminAuthRepository
	directory  *DirectoryService
	settings   *SettingsService
	adminAuth  *AdminAuthService
	inbox      *InboxService
	activity   *ActivityService
	sessions   *auth.SessionRegistry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	kv := persistence.NewMemoryStore()
	dispatcher := events.NewInMemoryDispatcher(logger)

	f := &fixture{
		kv:         kv,
		dispatcher: dispatcher,
		staffRepo:  repository.NewStaffRepository(kv, logger),
		prefsRepo:  repository.NewPreferencesRepository(kv, logger),
		adminRepo:  repository.NewAdminAuthRepository(kv, config.AdminConfig{PrimaryEmail: "a@b.com", PrimaryPassword: "X1"}, logger),
		activity:   NewActivityService(10),
		sessions:   auth.NewSessionRegistry(0, logger),
	}
	f.activity.RegisterHandlers(dispatcher)
	f.directory = NewDirectoryService(DirectoryDependencies{StaffRepo: f.staffRepo, Dispatcher: dispatcher, Logger: logger})
	f.settings = NewSettingsService(repository.NewSettingsRepository(kv, logger), dispatcher, logger)
	f.adminAuth = NewAdminAuthService(f.adminRepo, dispatcher, logger)
	f.inbox = NewInboxService(InboxDependencies{
		InboxRepo:  repository.NewInboxRepository(kv, logger),
		StaffRepo:  f.staffRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	return f
}

func (f *fixture) authService(verifyTeachers bool) *AuthService {
	return NewAuthService(AuthDependencies{
		AdminAuthRepo:   f.adminRepo,
		StaffRepo:       f.staffRepo,
		PreferencesRepo: f.prefsRepo,
		Sessions:        f.sessions,
		Tokens:          auth.NewTokenManager("test-secret", 60),
		Dispatcher:      f.dispatcher,
		VerifyTeachers:  verifyTeachers,
	})
}

func (f *fixture) seed(t *testing.T, staff ...domain.StaffMember) {
	t.Helper()
	require.NoError(t, f.staffRepo.ReplaceAll(context.Background(), staff))
}

func member(id string, role domain.StaffRole, status domain.StaffStatus) domain.StaffMember {
	return domain.StaffMember{ID: id, Name: "Staff " + id, Subject: "Math", Email: id + "@school.edu.sa", Role: role, Status: status}
}
