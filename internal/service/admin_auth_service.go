package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/events"
	"github.com/spec-kit/school-portal/internal/repository"
	apperrors "github.com/spec-kit/school-portal/pkg/util"
)

// AdminAuthService manages the admin credential set from the security tab.
type AdminAuthService struct {
	mu         sync.Mutex
	repo       repository.AdminAuthRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAdminAuthService builds the service.
func NewAdminAuthService(repo repository.AdminAuthRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AdminAuthService {
	return &AdminAuthService{repo: repo, dispatcher: dispatcher, logger: loggerOrNop(logger)}
}

// Get returns the stored credentials.
func (s *AdminAuthService) Get(ctx context.Context) (domain.AdminAuth, error) {
	auth, err := s.repo.Get(ctx)
	if err != nil {
		return domain.AdminAuth{}, apperrors.NewInternalError(err)
	}
	return auth, nil
}

// Set replaces the credential set. Empty and repeated secondary emails are dropped,
// as is a secondary equal to the primary email.
func (s *AdminAuthService) Set(ctx context.Context, actor domain.Session, auth domain.AdminAuth) (domain.AdminAuth, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.AdminAuth{}, err
	}
	auth.PrimaryEmail = strings.TrimSpace(auth.PrimaryEmail)
	if auth.PrimaryEmail == "" || auth.PrimaryPass == "" {
		return domain.AdminAuth{}, apperrors.NewValidationError("primary email and password required", nil)
	}

	secondary := make([]string, 0, len(auth.SecondaryEmails))
	seen := map[string]struct{}{domain.NormalizeEmail(auth.PrimaryEmail): {}}
	for _, email := range auth.SecondaryEmails {
		email = strings.TrimSpace(email)
		key := domain.NormalizeEmail(email)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		secondary = append(secondary, email)
	}
	auth.SecondaryEmails = secondary

	return s.update(ctx, actor, func(current *domain.AdminAuth) bool {
		*current = auth
		return true
	})
}

// AddSecondaryEmail appends email unless it is empty, already listed or the primary email.
func (s *AdminAuthService) AddSecondaryEmail(ctx context.Context, actor domain.Session, email string) (domain.AdminAuth, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.AdminAuth{}, err
	}
	email = strings.TrimSpace(email)

	return s.update(ctx, actor, func(auth *domain.AdminAuth) bool {
		if email == "" || auth.HasSecondary(email) {
			return false
		}
		if domain.NormalizeEmail(email) == domain.NormalizeEmail(auth.PrimaryEmail) {
			return false
		}
		auth.SecondaryEmails = append(auth.SecondaryEmails, email)
		return true
	})
}

// RemoveSecondaryEmail drops every occurrence of email.
func (s *AdminAuthService) RemoveSecondaryEmail(ctx context.Context, actor domain.Session, email string) (domain.AdminAuth, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.AdminAuth{}, err
	}

	return s.update(ctx, actor, func(auth *domain.AdminAuth) bool {
		if !auth.HasSecondary(email) {
			return false
		}
		kept := make([]string, 0, len(auth.SecondaryEmails))
		for _, existing := range auth.SecondaryEmails {
			if existing != email {
				kept = append(kept, existing)
			}
		}
		auth.SecondaryEmails = kept
		return true
	})
}

// update applies change to the stored credentials and saves them when it reports a change.
// security_updated is published after the lock is released.
func (s *AdminAuthService) update(ctx context.Context, actor domain.Session, change func(*domain.AdminAuth) bool) (domain.AdminAuth, error) {
	auth, changed, err := s.store(ctx, change)
	if err != nil || !changed {
		return auth, err
	}

	s.logger.Info("admin credentials updated", zap.Int("secondary_count", len(auth.SecondaryEmails)))
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:  events.EventSecurityUpdated,
		Actor: actorOf(actor),
		Payload: map[string]any{
			"primaryEmail":    auth.PrimaryEmail,
			"secondaryEmails": auth.SecondaryEmails,
		},
	})
	return auth, nil
}

func (s *AdminAuthService) store(ctx context.Context, change func(*domain.AdminAuth) bool) (domain.AdminAuth, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auth, err := s.Get(ctx)
	if err != nil {
		return domain.AdminAuth{}, false, err
	}
	if !change(&auth) {
		return auth, false, nil
	}
	if err := s.repo.Save(ctx, auth); err != nil {
		return domain.AdminAuth{}, false, apperrors.NewInternalError(err)
	}
	return auth, true, nil
}
