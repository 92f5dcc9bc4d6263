package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/auth"
	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/events"
	"github.com/spec-kit/school-portal/internal/repository"
	apperrors "github.com/spec-kit/school-portal/pkg/util"
)

// ParentLogin is the form submitted on the parent login screen.
type ParentLogin struct {
	Email       string
	StudentName string
	Level       string
	Section     string
	Remember    bool
}

// LoginResult bundles a started session with its bearer token.
type LoginResult struct {
	Session   domain.Session
	Token     string
	ExpiresAt time.Time
}

// AuthService resolves logins into sessions and issues their tokens.
type AuthService struct {
	adminAuth      repository.AdminAuthRepository
	staff          repository.StaffRepository
	preferences    repository.PreferencesRepository
	sessions       *auth.SessionRegistry
	tokenMgr       *auth.TokenManager
	dispatcher     events.Dispatcher
	logger         *zap.Logger
	verifyTeachers bool
}

// AuthDependencies encapsulates what the resolver reads and writes.
type AuthDependencies struct {
	AdminAuthRepo   repository.AdminAuthRepository
	StaffRepo       repository.StaffRepository
	PreferencesRepo repository.PreferencesRepository
	Sessions        *auth.SessionRegistry
	Tokens          *auth.TokenManager
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
	// VerifyTeachers turns off the open teacher mode.
	VerifyTeachers bool
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		adminAuth:      deps.AdminAuthRepo,
		staff:          deps.StaffRepo,
		preferences:    deps.PreferencesRepo,
		sessions:       deps.Sessions,
		tokenMgr:       deps.Tokens,
		dispatcher:     deps.Dispatcher,
		logger:         loggerOrNop(deps.Logger),
		verifyTeachers: deps.VerifyTeachers,
	}
}

// ResolveLogin maps staff-screen credentials to a session. Admin credentials
// yield an admin session; anything else yields a teacher session carrying the
// supplied name and email, unless teacher verification is on.
func (s *AuthService) ResolveLogin(ctx context.Context, email, password, displayName string) (domain.Session, error) {
	creds, err := s.adminAuth.Get(ctx)
	if err != nil {
		return domain.Session{}, apperrors.NewInternalError(err)
	}
	if creds.Authenticate(email, password) {
		return adminSession(email), nil
	}

	if blank(email, password, displayName) {
		return domain.Session{}, apperrors.NewValidationError("email, password and name required", nil)
	}

	if s.verifyTeachers {
		member, err := s.staff.GetByEmail(ctx, email)
		if err != nil {
			return domain.Session{}, apperrors.NewInternalError(err)
		}
		if member == nil || member.Status != domain.StaffStatusActive {
			return domain.Session{}, apperrors.NewUnauthorized("no active staff record for this email")
		}
	}

	return domain.Session{
		Role:        domain.SessionRoleTeacher,
		Email:       email,
		DisplayName: displayName,
	}, nil
}

// ResolveAdminLogin accepts admin credentials only and never falls back to a teacher session.
func (s *AuthService) ResolveAdminLogin(ctx context.Context, email, password string) (domain.Session, error) {
	if blank(email, password) {
		return domain.Session{}, apperrors.NewValidationError("email and password required", nil)
	}
	creds, err := s.adminAuth.Get(ctx)
	if err != nil {
		return domain.Session{}, apperrors.NewInternalError(err)
	}
	if !creds.Authenticate(email, password) {
		return domain.Session{}, apperrors.NewUnauthorized("invalid admin credentials")
	}
	return adminSession(email), nil
}

// ResolveParentLogin builds a parent session and updates the remembered login.
func (s *AuthService) ResolveParentLogin(ctx context.Context, in ParentLogin) (domain.Session, error) {
	if blank(in.Email, in.StudentName, in.Level, in.Section) {
		return domain.Session{}, apperrors.NewValidationError("email, student name, level and section required", nil)
	}

	if s.preferences != nil {
		var err error
		if in.Remember {
			err = s.preferences.SaveRememberedParent(ctx, domain.RememberedParent{Email: in.Email, StudentName: in.StudentName})
		} else {
			err = s.preferences.ForgetParent(ctx)
		}
		if err != nil {
			return domain.Session{}, apperrors.NewInternalError(err)
		}
	}

	return domain.Session{
		Role:        domain.SessionRoleParent,
		Email:       in.Email,
		DisplayName: in.StudentName,
		StudentName: in.StudentName,
		Class:       domain.ClassLabel(in.Level, in.Section),
	}, nil
}

// LoginStaff resolves a staff-screen login and starts its session.
func (s *AuthService) LoginStaff(ctx context.Context, email, password, displayName string) (*LoginResult, error) {
	session, err := s.ResolveLogin(ctx, email, password, displayName)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, session)
}

// LoginAdmin resolves a hidden-panel admin login and starts its session.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*LoginResult, error) {
	session, err := s.ResolveAdminLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, session)
}

// LoginParent resolves a parent login and starts its session.
func (s *AuthService) LoginParent(ctx context.Context, in ParentLogin) (*LoginResult, error) {
	session, err := s.ResolveParentLogin(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, session)
}

// Session returns the live session with id.
func (s *AuthService) Session(_ context.Context, id string) (domain.Session, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return domain.Session{}, apperrors.NewUnauthorized("session not found")
	}
	return session, nil
}

// Logout destroys the session. Ending an unknown session is not an error.
func (s *AuthService) Logout(_ context.Context, id string) error {
	if s.sessions.End(id) {
		s.logger.Info("session ended", zap.String("session_id", id))
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Sessions exposes the registry for middleware usage.
func (s *AuthService) Sessions() *auth.SessionRegistry {
	return s.sessions
}

func (s *AuthService) start(ctx context.Context, session domain.Session) (*LoginResult, error) {
	session = s.sessions.Create(session)
	token, exp, err := s.tokenMgr.GenerateToken(session.ID, session.Role)
	if err != nil {
		s.sessions.End(session.ID)
		return nil, apperrors.NewInternalError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventSessionStarted,
		SubjectID: session.ID,
		Actor:     actorOf(session),
		Payload:   events.SessionPayload{Role: session.Role, Email: session.Email},
	})
	return &LoginResult{Session: session, Token: token, ExpiresAt: exp}, nil
}

func adminSession(email string) domain.Session {
	return domain.Session{
		Role:        domain.SessionRoleAdmin,
		Email:       domain.NormalizeEmail(email),
		DisplayName: domain.AdminDisplayName,
	}
}
