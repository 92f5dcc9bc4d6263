package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/persistence"
)

// InboxRepository persists voice-room requests and e-mail inquiries.
type InboxRepository interface {
	Get(ctx context.Context) (domain.Inbox, error)
	Save(ctx context.Context, inbox domain.Inbox) error
}

type inboxRepository struct {
	blob blob[domain.Inbox]
}

// NewInboxRepository builds the repository.
func NewInboxRepository(kv persistence.KeyValueStore, logger *zap.Logger) InboxRepository {
	return &inboxRepository{
		blob: blob[domain.Inbox]{
			kv:       kv,
			key:      persistence.KeyInbox,
			defaults: func() domain.Inbox { return domain.Inbox{} },
			logger:   loggerOrNop(logger),
		},
	}
}

func (r *inboxRepository) Get(ctx context.Context) (domain.Inbox, error) {
	return r.blob.load(ctx)
}

func (r *inboxRepository) Save(ctx context.Context, inbox domain.Inbox) error {
	return r.blob.save(ctx, inbox)
}
