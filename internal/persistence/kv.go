package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/config"
)

// Keys of the portal key-value area.
const (
	KeyStaff             = "site_teachers"
	KeySiteSettings      = "site_settings"
	KeyAdminAuth         = "admin_auth_config"
	KeyTheme             = "theme"
	KeyParentEmail       = "parent_email"
	KeyParentStudentName = "parent_student_name"
	KeyInbox             = "teacher_inbox"
)

// ErrKeyNotFound is returned by Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the opaque blob area portal state is persisted in.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// NewKeyValueStore picks the backend named by the storage config.
func NewKeyValueStore(cfg config.StorageConfig, pg *Postgres, rdb *Redis, logger *zap.Logger) (KeyValueStore, error) {
	switch cfg.Driver {
	case config.StorageMemory, "":
		logger.Info("using in-memory portal storage")
		return NewMemoryStore(), nil
	case config.StorageRedis:
		if rdb == nil || rdb.Client == nil {
			return nil, errors.New("redis storage selected but no client configured")
		}
		logger.Info("using redis portal storage", zap.String("prefix", cfg.KeyPrefix))
		return NewRedisStore(rdb.Client, cfg.KeyPrefix), nil
	case config.StoragePostgres:
		if pg.PoolHandle() == nil {
			return nil, errors.New("postgres storage selected but no pool configured")
		}
		logger.Info("using postgres portal storage")
		return NewPostgresStore(pg.PoolHandle()), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
