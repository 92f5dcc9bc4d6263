package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/persistence"
)

// PreferencesRepository stores the theme and the remembered parent login as raw strings.
type PreferencesRepository interface {
	Theme(ctx context.Context) (domain.Theme, error)
	SaveTheme(ctx context.Context, theme domain.Theme) error
	RememberedParent(ctx context.Context) (*domain.RememberedParent, error)
	SaveRememberedParent(ctx context.Context, parent domain.RememberedParent) error
	ForgetParent(ctx context.Context) error
}

type preferencesRepository struct {
	kv     persistence.KeyValueStore
	logger *zap.Logger
}

// NewPreferencesRepository builds the repository.
func NewPreferencesRepository(kv persistence.KeyValueStore, logger *zap.Logger) PreferencesRepository {
	return &preferencesRepository{kv: kv, logger: loggerOrNop(logger)}
}

func (r *preferencesRepository) Theme(ctx context.Context) (domain.Theme, error) {
	raw, ok, err := r.getString(ctx, persistence.KeyTheme)
	if err != nil || !ok {
		return domain.ThemeLight, err
	}
	theme := domain.Theme(raw)
	if !theme.Valid() {
		r.logger.Warn("unknown theme, using light", zap.String("theme", raw))
		return domain.ThemeLight, nil
	}
	return theme, nil
}

func (r *preferencesRepository) SaveTheme(ctx context.Context, theme domain.Theme) error {
	return r.setString(ctx, persistence.KeyTheme, string(theme))
}

// RememberedParent returns nil unless both the email and the student name are stored.
func (r *preferencesRepository) RememberedParent(ctx context.Context) (*domain.RememberedParent, error) {
	email, okEmail, err := r.getString(ctx, persistence.KeyParentEmail)
	if err != nil {
		return nil, err
	}
	name, okName, err := r.getString(ctx, persistence.KeyParentStudentName)
	if err != nil {
		return nil, err
	}
	if !okEmail || !okName || email == "" || name == "" {
		return nil, nil
	}
	return &domain.RememberedParent{Email: email, StudentName: name}, nil
}

func (r *preferencesRepository) SaveRememberedParent(ctx context.Context, parent domain.RememberedParent) error {
	if err := r.setString(ctx, persistence.KeyParentEmail, parent.Email); err != nil {
		return err
	}
	return r.setString(ctx, persistence.KeyParentStudentName, parent.StudentName)
}

func (r *preferencesRepository) ForgetParent(ctx context.Context) error {
	if err := r.kv.Delete(ctx, persistence.KeyParentEmail); err != nil {
		return fmt.Errorf("delete %s: %w", persistence.KeyParentEmail, err)
	}
	if err := r.kv.Delete(ctx, persistence.KeyParentStudentName); err != nil {
		return fmt.Errorf("delete %s: %w", persistence.KeyParentStudentName, err)
	}
	return nil
}

func (r *preferencesRepository) getString(ctx context.Context, key string) (string, bool, error) {
	raw, err := r.kv.Get(ctx, key)
	if errors.Is(err, persistence.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", key, err)
	}
	return string(raw), true, nil
}

func (r *preferencesRepository) setString(ctx context.Context, key, value string) error {
	if err := r.kv.Set(ctx, key, []byte(value)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
