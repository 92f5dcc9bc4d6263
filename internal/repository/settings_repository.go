package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/persistence"
)

// SettingsRepository persists the site settings.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.SiteSettings, error)
	Save(ctx context.Context, settings domain.SiteSettings) error
}

type settingsRepository struct {
	blob   blob[domain.SiteSettings]
	logger *zap.Logger
}

// NewSettingsRepository builds the repository.
func NewSettingsRepository(kv persistence.KeyValueStore, logger *zap.Logger) SettingsRepository {
	logger = loggerOrNop(logger)
	return &settingsRepository{
		blob: blob[domain.SiteSettings]{
			kv:       kv,
			key:      persistence.KeySiteSettings,
			defaults: domain.DefaultSiteSettings,
			logger:   logger,
		},
		logger: logger,
	}
}

func (r *settingsRepository) Get(ctx context.Context) (domain.SiteSettings, error) {
	settings, err := r.blob.load(ctx)
	if err != nil {
		return domain.SiteSettings{}, err
	}
	if !settings.PrimaryColor.Valid() {
		r.logger.Warn("unknown primary color, using default", zap.String("color", string(settings.PrimaryColor)))
		settings.PrimaryColor = domain.DefaultSiteSettings().PrimaryColor
	}
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings domain.SiteSettings) error {
	return r.blob.save(ctx, settings)
}
