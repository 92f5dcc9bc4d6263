package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/config"
	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/persistence"
)

// AdminAuthRepository persists the admin credential set.
type AdminAuthRepository interface {
	Get(ctx context.Context) (domain.AdminAuth, error)
	Save(ctx context.Context, auth domain.AdminAuth) error
}

type adminAuthRepository struct {
	blob blob[domain.AdminAuth]
}

// NewAdminAuthRepository builds the repository; cfg supplies the credentials used until some are saved.
func NewAdminAuthRepository(kv persistence.KeyValueStore, cfg config.AdminConfig, logger *zap.Logger) AdminAuthRepository {
	return &adminAuthRepository{
		blob: blob[domain.AdminAuth]{
			kv:  kv,
			key: persistence.KeyAdminAuth,
			defaults: func() domain.AdminAuth {
				return domain.AdminAuth{
					PrimaryEmail:    cfg.PrimaryEmail,
					PrimaryPass:     cfg.PrimaryPassword,
					SecondaryEmails: []string{},
				}
			},
			logger: loggerOrNop(logger),
		},
	}
}

func (r *adminAuthRepository) Get(ctx context.Context) (domain.AdminAuth, error) {
	auth, err := r.blob.load(ctx)
	if err != nil {
		return domain.AdminAuth{}, err
	}
	if auth.SecondaryEmails == nil {
		auth.SecondaryEmails = []string{}
	}
	return auth, nil
}

func (r *adminAuthRepository) Save(ctx context.Context, auth domain.AdminAuth) error {
	if auth.SecondaryEmails == nil {
		auth.SecondaryEmails = []string{}
	}
	return r.blob.save(ctx, auth)
}
