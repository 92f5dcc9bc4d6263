package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/persistence"
)

// StaffRepository persists the staff roster as a single ordered blob.
// GetByID and GetByEmail return nil without an error when nothing matches.
type StaffRepository interface {
	List(ctx context.Context) ([]domain.StaffMember, error)
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error)
	ReplaceAll(ctx context.Context, staff []domain.StaffMember) error
}

// storedRoster decodes records one at a time, so a single undecodable record
// becomes a zero member that List drops instead of failing the whole roster.
type storedRoster []domain.StaffMember

func (r *storedRoster) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(storedRoster, len(raw))
	for i, item := range raw {
		if err := json.Unmarshal(item, &out[i]); err != nil {
			out[i] = domain.StaffMember{}
		}
	}
	*r = out
	return nil
}

type staffRepository struct {
	blob   blob[storedRoster]
	logger *zap.Logger
}

// NewStaffRepository instantiates the repository. The seed roster is returned until something is saved.
func NewStaffRepository(kv persistence.KeyValueStore, logger *zap.Logger) StaffRepository {
	logger = loggerOrNop(logger)
	return &staffRepository{
		blob: blob[storedRoster]{
			kv:       kv,
			key:      persistence.KeyStaff,
			defaults: func() storedRoster { return domain.DefaultStaff() },
			logger:   logger,
		},
		logger: logger,
	}
}

func (r *staffRepository) List(ctx context.Context) ([]domain.StaffMember, error) {
	staff, err := r.blob.load(ctx)
	if err != nil {
		return nil, err
	}

	valid := make([]domain.StaffMember, 0, len(staff))
	for _, member := range staff {
		if !member.Role.Valid() || !member.Status.Valid() {
			r.logger.Warn("dropping staff record with unknown role or status",
				zap.String("id", member.ID),
				zap.String("role", string(member.Role)),
				zap.String("status", string(member.Status)))
			continue
		}
		valid = append(valid, member)
	}
	return valid, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	staff, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range staff {
		if staff[i].ID == id {
			return &staff[i], nil
		}
	}
	return nil, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	staff, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	normalized := domain.NormalizeEmail(email)
	for i := range staff {
		if domain.NormalizeEmail(staff[i].Email) == normalized {
			return &staff[i], nil
		}
	}
	return nil, nil
}

func (r *staffRepository) ReplaceAll(ctx context.Context, staff []domain.StaffMember) error {
	if staff == nil {
		staff = []domain.StaffMember{}
	}
	return r.blob.save(ctx, storedRoster(staff))
}
