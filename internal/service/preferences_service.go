package service

import (
	"context"

	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/repository"
	apperrors "github.com/spec-kit/school-portal/pkg/util"
)

// PreferencesService exposes the theme toggle and the remembered parent login.
type PreferencesService struct {
	repo repository.PreferencesRepository
}

// NewPreferencesService builds the service.
func NewPreferencesService(repo repository.PreferencesRepository) *PreferencesService {
	return &PreferencesService{repo: repo}
}

func (s *PreferencesService) Theme(ctx context.Context) (domain.Theme, error) {
	theme, err := s.repo.Theme(ctx)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return theme, nil
}

func (s *PreferencesService) SetTheme(ctx context.Context, theme domain.Theme) (domain.Theme, error) {
	if !theme.Valid() {
		return "", apperrors.NewValidationError("unknown theme", map[string]any{"theme": theme})
	}
	if err := s.repo.SaveTheme(ctx, theme); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return theme, nil
}

// RememberedParent returns nil when no parent login was remembered.
func (s *PreferencesService) RememberedParent(ctx context.Context) (*domain.RememberedParent, error) {
	parent, err := s.repo.RememberedParent(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return parent, nil
}

func (s *PreferencesService) ForgetParent(ctx context.Context) error {
	if err := s.repo.ForgetParent(ctx); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}
