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

// SettingsPatch carries the fields an admin wants to replace. Nil fields are left alone.
type SettingsPatch struct {
	SiteTitle            *string
	SchoolName           *string
	MinistryName         *string
	PrimaryColor         *domain.PrimaryColor
	EnableVoiceRoom      *bool
	EnableVoiceRecording *bool
	EnableEmail          *bool
}

// SettingsService reads and writes the site configuration.
type SettingsService struct {
	mu         sync.Mutex
	settings   repository.SettingsRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSettingsService builds the service.
func NewSettingsService(settings repository.SettingsRepository, dispatcher events.Dispatcher, logger *zap.Logger) *SettingsService {
	return &SettingsService{settings: settings, dispatcher: dispatcher, logger: loggerOrNop(logger)}
}

// Get returns the current settings.
func (s *SettingsService) Get(ctx context.Context) (domain.SiteSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.SiteSettings{}, apperrors.NewInternalError(err)
	}
	return settings, nil
}

// Branding derives the display projection from the current settings.
func (s *SettingsService) Branding(ctx context.Context) (domain.Branding, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return domain.Branding{}, err
	}
	return settings.Branding(), nil
}

// Set applies patch and persists the result immediately.
func (s *SettingsService) Set(ctx context.Context, actor domain.Session, patch SettingsPatch) (domain.SiteSettings, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.SiteSettings{}, err
	}
	if patch.PrimaryColor != nil && !patch.PrimaryColor.Valid() {
		return domain.SiteSettings{}, apperrors.NewValidationError("unknown primary color", map[string]any{"primaryColor": *patch.PrimaryColor})
	}

	settings, err := s.apply(ctx, patch)
	if err != nil {
		return domain.SiteSettings{}, err
	}
	s.logger.Info("site settings updated", zap.String("primary_color", string(settings.PrimaryColor)))
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventSettingsUpdated,
		Actor:   actorOf(actor),
		Payload: settings,
	})
	return settings, nil
}

func (s *SettingsService) apply(ctx context.Context, patch SettingsPatch) (domain.SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.Get(ctx)
	if err != nil {
		return domain.SiteSettings{}, err
	}
	applyText(&settings.SiteTitle, patch.SiteTitle)
	applyText(&settings.SchoolName, patch.SchoolName)
	applyText(&settings.MinistryName, patch.MinistryName)
	if patch.PrimaryColor != nil {
		settings.PrimaryColor = *patch.PrimaryColor
	}
	if patch.EnableVoiceRoom != nil {
		settings.EnableVoiceRoom = *patch.EnableVoiceRoom
	}
	if patch.EnableVoiceRecording != nil {
		settings.EnableVoiceRecording = *patch.EnableVoiceRecording
	}
	if patch.EnableEmail != nil {
		settings.EnableEmail = *patch.EnableEmail
	}

	if err := s.settings.Save(ctx, settings); err != nil {
		return domain.SiteSettings{}, apperrors.NewInternalError(err)
	}
	return settings, nil
}

func applyText(dst *string, value *string) {
	if value != nil {
		*dst = strings.TrimSpace(*value)
	}
}
