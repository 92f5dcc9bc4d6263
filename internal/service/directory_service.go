package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/events"
	"github.com/spec-kit/school-portal/internal/repository"
	apperrors "github.com/spec-kit/school-portal/pkg/util"
)

// ConfirmFunc asks the caller to confirm a destructive action on member.
type ConfirmFunc func(ctx context.Context, member domain.StaffMember) bool

// DirectoryService manages the staff roster and its approval workflow.
// Every mutation rewrites the whole roster before returning.
type DirectoryService struct {
	mu         sync.Mutex
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// DirectoryDependencies bundles what the directory needs.
type DirectoryDependencies struct {
	StaffRepo  repository.StaffRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		staff:      deps.StaffRepo,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// List returns every record in insertion order.
func (s *DirectoryService) List(ctx context.Context) ([]domain.StaffMember, error) {
	staff, err := s.staff.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return staff, nil
}

// PublicDirectory returns the records parents may contact.
func (s *DirectoryService) PublicDirectory(ctx context.Context) ([]domain.StaffMember, error) {
	return s.filter(ctx, func(m domain.StaffMember) bool { return m.Public() })
}

// PendingQueue returns the records awaiting approval.
func (s *DirectoryService) PendingQueue(ctx context.Context) ([]domain.StaffMember, error) {
	return s.filter(ctx, func(m domain.StaffMember) bool { return m.Status == domain.StaffStatusPending })
}

// Reviewed returns every record that already left the approval queue.
func (s *DirectoryService) Reviewed(ctx context.Context) ([]domain.StaffMember, error) {
	return s.filter(ctx, func(m domain.StaffMember) bool { return m.Status != domain.StaffStatusPending })
}

func (s *DirectoryService) filter(ctx context.Context, keep func(domain.StaffMember) bool) ([]domain.StaffMember, error) {
	staff, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.StaffMember, 0, len(staff))
	for _, member := range staff {
		if keep(member) {
			out = append(out, member)
		}
	}
	return out, nil
}

// Submit appends a new join request. The record always starts pending.
func (s *DirectoryService) Submit(ctx context.Context, member domain.StaffMember) (*domain.StaffMember, error) {
	member.Name = strings.TrimSpace(member.Name)
	member.Email = strings.TrimSpace(member.Email)
	if blank(member.Name, member.Email, member.Subject) {
		return nil, apperrors.NewValidationError("name, email and subject required", nil)
	}
	if member.Role == "" {
		member.Role = domain.StaffRoleTeacher
	}
	if !member.Role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": member.Role})
	}
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	member.Status = domain.StaffStatusPending

	if err := s.insert(ctx, member); err != nil {
		return nil, err
	}
	s.logger.Info("staff join request submitted", zap.String("id", member.ID))
	s.emit(ctx, events.EventStaffSubmitted, events.Actor{Name: member.Name}, member, events.StaffPayload{
		Name: member.Name, Email: member.Email, NewRole: member.Role, NewStatus: member.Status,
	})
	return &member, nil
}

// Approve activates the record under the chosen role. An unknown id is a no-op and yields nil.
func (s *DirectoryService) Approve(ctx context.Context, actor domain.Session, id string, role domain.StaffRole) (*domain.StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	var before domain.StaffMember
	updated, err := s.mutate(ctx, id, func(m *domain.StaffMember) error {
		before = *m
		m.Status = domain.StaffStatusActive
		m.Role = role
		return nil
	})
	if err != nil || updated == nil {
		return updated, err
	}

	s.logger.Info("staff approved", zap.String("id", id), zap.String("role", string(role)))
	s.emit(ctx, events.EventStaffApproved, actorOf(actor), *updated, events.StaffPayload{
		Name: updated.Name, Email: updated.Email,
		OldRole: before.Role, NewRole: updated.Role,
		OldStatus: before.Status, NewStatus: updated.Status,
	})
	return updated, nil
}

// Reject removes the record once confirm agrees. An unknown id is a no-op and yields nil;
// a declined confirmation leaves the roster untouched and returns a confirmation error.
func (s *DirectoryService) Reject(ctx context.Context, actor domain.Session, id string, confirm ConfirmFunc) (*domain.StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	removed, err := s.remove(ctx, id, confirm)
	if err != nil || removed == nil {
		return removed, err
	}

	s.logger.Info("staff rejected", zap.String("id", id))
	s.emit(ctx, events.EventStaffRejected, actorOf(actor), *removed, events.StaffPayload{
		Name: removed.Name, Email: removed.Email, OldStatus: removed.Status,
	})
	return removed, nil
}

// ToggleFreeze flips a record between active and frozen. Pending records are refused.
func (s *DirectoryService) ToggleFreeze(ctx context.Context, actor domain.Session, id string) (*domain.StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var before domain.StaffStatus
	updated, err := s.mutate(ctx, id, func(m *domain.StaffMember) error {
		before = m.Status
		switch m.Status {
		case domain.StaffStatusActive:
			m.Status = domain.StaffStatusFrozen
		case domain.StaffStatusFrozen:
			m.Status = domain.StaffStatusActive
		case domain.StaffStatusPending:
			return apperrors.NewConflict("pending records must be approved before they can be frozen", map[string]any{"id": id})
		}
		return nil
	})
	if err != nil || updated == nil {
		return updated, err
	}

	eventType := events.EventStaffFrozen
	if updated.Status == domain.StaffStatusActive {
		eventType = events.EventStaffUnfrozen
	}
	s.logger.Info("staff freeze toggled", zap.String("id", id), zap.String("status", string(updated.Status)))
	s.emit(ctx, eventType, actorOf(actor), *updated, events.StaffPayload{
		Name: updated.Name, Email: updated.Email, OldStatus: before, NewStatus: updated.Status,
	})
	return updated, nil
}

// SetRole reassigns the role whatever the status. An unknown id is a no-op and yields nil.
func (s *DirectoryService) SetRole(ctx context.Context, actor domain.Session, id string, role domain.StaffRole) (*domain.StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	var before domain.StaffRole
	updated, err := s.mutate(ctx, id, func(m *domain.StaffMember) error {
		before = m.Role
		m.Role = role
		return nil
	})
	if err != nil || updated == nil {
		return updated, err
	}

	s.logger.Info("staff role changed", zap.String("id", id), zap.String("role", string(role)))
	s.emit(ctx, events.EventStaffRoleChanged, actorOf(actor), *updated, events.StaffPayload{
		Name: updated.Name, Email: updated.Email, OldRole: before, NewRole: role,
	})
	return updated, nil
}

// insert appends member unless its id or email is taken.
func (s *DirectoryService) insert(ctx context.Context, member domain.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, existing := range staff {
		if existing.ID == member.ID {
			return apperrors.NewConflict("staff id already exists", map[string]any{"id": member.ID})
		}
		if domain.NormalizeEmail(existing.Email) == domain.NormalizeEmail(member.Email) {
			return apperrors.NewConflict("staff email already exists", map[string]any{"email": member.Email})
		}
	}
	return s.save(ctx, append(staff, member))
}

// remove deletes the record with id once confirm agrees. It returns nil when id is unknown.
func (s *DirectoryService) remove(ctx context.Context, id string, confirm ConfirmFunc) (*domain.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(staff, id)
	if idx < 0 {
		return nil, nil
	}
	removed := staff[idx]
	if confirm == nil || !confirm(ctx, removed) {
		return nil, apperrors.NewConfirmationRequired("rejecting a staff record must be confirmed", map[string]any{"id": id})
	}

	remaining := append(staff[:idx:idx], staff[idx+1:]...)
	if err := s.save(ctx, remaining); err != nil {
		return nil, err
	}
	return &removed, nil
}

// mutate applies change to the record with id and writes the roster back.
// It returns nil without saving when id is unknown. Events are emitted by the
// caller after the lock is released, since handlers may deliver mail.
func (s *DirectoryService) mutate(ctx context.Context, id string, change func(*domain.StaffMember) error) (*domain.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(staff, id)
	if idx < 0 {
		return nil, nil
	}
	if err := change(&staff[idx]); err != nil {
		return nil, err
	}
	if err := s.save(ctx, staff); err != nil {
		return nil, err
	}
	updated := staff[idx]
	return &updated, nil
}

func (s *DirectoryService) save(ctx context.Context, staff []domain.StaffMember) error {
	if err := s.staff.ReplaceAll(ctx, staff); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *DirectoryService) emit(ctx context.Context, eventType events.EventType, actor events.Actor, member domain.StaffMember, payload events.StaffPayload) {
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:      eventType,
		SubjectID: member.ID,
		Actor:     actor,
		Payload:   payload,
	})
}

func indexOf(staff []domain.StaffMember, id string) int {
	for i := range staff {
		if staff[i].ID == id {
			return i
		}
	}
	return -1
}
