package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/events"
	"github.com/spec-kit/school-portal/internal/repository"
	apperrors "github.com/spec-kit/school-portal/pkg/util"
)

// parentLabel prefixes the student's name on inbox items.
const parentLabel = "ولي/ة أمر "

// InquiryInput is a parent's e-mail to a staff member.
type InquiryInput struct {
	StaffID string
	Subject string
	Content string
}

// InboxService routes voice-room requests and inquiries between parents and staff.
type InboxService struct {
	mu         sync.Mutex
	inbox      repository.InboxRepository
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// InboxDependencies bundles what the inbox needs.
type InboxDependencies struct {
	InboxRepo  repository.InboxRepository
	StaffRepo  repository.StaffRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewInboxService builds the service.
func NewInboxService(deps InboxDependencies) *InboxService {
	return &InboxService{
		inbox:      deps.InboxRepo,
		staff:      deps.StaffRepo,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
		now:        time.Now,
	}
}

// Inbox returns the items addressed to the staff member behind a teacher session.
// A teacher without a directory record has an empty inbox.
func (s *InboxService) Inbox(ctx context.Context, teacher domain.Session) (domain.Inbox, error) {
	out := domain.Inbox{VoiceRooms: []domain.VoiceRoomRequest{}, Emails: []domain.EmailInquiry{}}
	staffID, err := s.staffIDFor(ctx, teacher)
	if err != nil || staffID == "" {
		return out, err
	}

	all, err := s.load(ctx)
	if err != nil {
		return out, err
	}
	for _, room := range all.VoiceRooms {
		if room.StaffID == staffID {
			out.VoiceRooms = append(out.VoiceRooms, room)
		}
	}
	for _, email := range all.Emails {
		if email.StaffID == staffID {
			out.Emails = append(out.Emails, email)
		}
	}
	return out, nil
}

// RequestVoiceRoom queues a parent's request to talk with an active staff member.
func (s *InboxService) RequestVoiceRoom(ctx context.Context, parent domain.Session, staffID string) (*domain.VoiceRoomRequest, error) {
	if err := requireParent(parent); err != nil {
		return nil, err
	}
	if _, err := s.activeStaff(ctx, staffID); err != nil {
		return nil, err
	}

	request := domain.VoiceRoomRequest{
		ID:           uuid.NewString(),
		StaffID:      staffID,
		ParentName:   parentLabel + parent.StudentName,
		StudentName:  parent.StudentName,
		StudentClass: parent.Class,
		CreatedAt:    s.now().UTC(),
		Status:       domain.VoiceRoomPending,
	}

	err := s.modify(ctx, func(all *domain.Inbox) error {
		all.VoiceRooms = append([]domain.VoiceRoomRequest{request}, all.VoiceRooms...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.EventVoiceRoomRequest, parent, request.ID, events.InboxPayload{
		StaffID: staffID, ParentName: request.ParentName, StudentName: request.StudentName, Status: string(request.Status),
	})
	return &request, nil
}

// RespondVoiceRoom accepts or rejects a pending request addressed to the teacher.
func (s *InboxService) RespondVoiceRoom(ctx context.Context, teacher domain.Session, id string, accept bool) (*domain.VoiceRoomRequest, error) {
	staffID, err := s.staffIDFor(ctx, teacher)
	if err != nil {
		return nil, err
	}

	var answered domain.VoiceRoomRequest
	err = s.modify(ctx, func(all *domain.Inbox) error {
		idx := -1
		for i := range all.VoiceRooms {
			if all.VoiceRooms[i].ID == id && staffID != "" && all.VoiceRooms[i].StaffID == staffID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperrors.NewNotFound("voice room request", map[string]any{"id": id})
		}
		room := &all.VoiceRooms[idx]
		if room.Status != domain.VoiceRoomPending {
			return apperrors.NewConflict("voice room request already answered", map[string]any{"status": room.Status})
		}
		room.Status = domain.VoiceRoomRejected
		if accept {
			room.Status = domain.VoiceRoomAccepted
		}
		answered = *room
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.EventVoiceRoomAnswer, teacher, answered.ID, events.InboxPayload{
		StaffID: staffID, ParentName: answered.ParentName, StudentName: answered.StudentName, Status: string(answered.Status),
	})
	return &answered, nil
}

// SendInquiry delivers a parent's e-mail to an active staff member.
func (s *InboxService) SendInquiry(ctx context.Context, parent domain.Session, in InquiryInput) (*domain.EmailInquiry, error) {
	if err := requireParent(parent); err != nil {
		return nil, err
	}
	in.Subject = strings.TrimSpace(in.Subject)
	in.Content = strings.TrimSpace(in.Content)
	if in.Subject == "" || in.Content == "" {
		return nil, apperrors.NewValidationError("subject and content required", nil)
	}
	if _, err := s.activeStaff(ctx, in.StaffID); err != nil {
		return nil, err
	}

	inquiry := domain.EmailInquiry{
		ID:          uuid.NewString(),
		StaffID:     in.StaffID,
		Subject:     in.Subject,
		ParentName:  parentLabel + parent.StudentName,
		ParentEmail: parent.Email,
		Content:     in.Content,
		CreatedAt:   s.now().UTC(),
		Status:      domain.InquiryUnread,
	}

	err := s.modify(ctx, func(all *domain.Inbox) error {
		all.Emails = append([]domain.EmailInquiry{inquiry}, all.Emails...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.EventInquirySent, parent, inquiry.ID, events.InboxPayload{
		StaffID: in.StaffID, ParentName: inquiry.ParentName, ParentEmail: parent.Email, StudentName: parent.StudentName, Status: string(inquiry.Status),
	})
	return &inquiry, nil
}

// MarkRead moves an unread inquiry to read. Read and replied inquiries are returned unchanged.
func (s *InboxService) MarkRead(ctx context.Context, teacher domain.Session, id string) (*domain.EmailInquiry, error) {
	return s.updateInquiry(ctx, teacher, id, func(inquiry *domain.EmailInquiry) (bool, error) {
		if inquiry.Status != domain.InquiryUnread {
			return false, nil
		}
		inquiry.Status = domain.InquiryRead
		return true, nil
	})
}

// Reply stores the teacher's answer and marks the inquiry replied.
func (s *InboxService) Reply(ctx context.Context, teacher domain.Session, id, text string) (*domain.EmailInquiry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("reply text required", nil)
	}
	replied, err := s.updateInquiry(ctx, teacher, id, func(inquiry *domain.EmailInquiry) (bool, error) {
		inquiry.Reply = text
		inquiry.Status = domain.InquiryReplied
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, events.EventInquiryReplied, teacher, replied.ID, events.InboxPayload{
		StaffID: replied.StaffID, ParentName: replied.ParentName, ParentEmail: replied.ParentEmail, Status: string(replied.Status),
	})
	return replied, nil
}

func (s *InboxService) updateInquiry(ctx context.Context, teacher domain.Session, id string, change func(*domain.EmailInquiry) (bool, error)) (*domain.EmailInquiry, error) {
	staffID, err := s.staffIDFor(ctx, teacher)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all.Emails {
		inquiry := &all.Emails[i]
		if inquiry.ID != id || staffID == "" || inquiry.StaffID != staffID {
			continue
		}
		changed, err := change(inquiry)
		if err != nil {
			return nil, err
		}
		if changed {
			if err := s.save(ctx, all); err != nil {
				return nil, err
			}
		}
		out := *inquiry
		return &out, nil
	}
	return nil, apperrors.NewNotFound("inquiry", map[string]any{"id": id})
}

// staffIDFor maps a teacher session to its directory record by email.
func (s *InboxService) staffIDFor(ctx context.Context, teacher domain.Session) (string, error) {
	if teacher.Role != domain.SessionRoleTeacher {
		return "", apperrors.NewForbidden("teacher role required")
	}
	member, err := s.staff.GetByEmail(ctx, teacher.Email)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if member == nil {
		return "", nil
	}
	return member.ID, nil
}

func (s *InboxService) activeStaff(ctx context.Context, staffID string) (*domain.StaffMember, error) {
	member, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if member == nil || !member.Public() {
		return nil, apperrors.NewNotFound("staff member", map[string]any{"id": staffID})
	}
	return member, nil
}

// modify runs change on the stored inbox under the lock and saves it when change succeeds.
func (s *InboxService) modify(ctx context.Context, change func(*domain.Inbox) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := change(&all); err != nil {
		return err
	}
	return s.save(ctx, all)
}

func (s *InboxService) load(ctx context.Context) (domain.Inbox, error) {
	inbox, err := s.inbox.Get(ctx)
	if err != nil {
		return domain.Inbox{}, apperrors.NewInternalError(err)
	}
	return inbox, nil
}

func (s *InboxService) save(ctx context.Context, inbox domain.Inbox) error {
	if err := s.inbox.Save(ctx, inbox); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *InboxService) emit(ctx context.Context, eventType events.EventType, actor domain.Session, subjectID string, payload events.InboxPayload) {
	s.logger.Info("inbox updated", zap.String("event_type", string(eventType)), zap.String("id", subjectID))
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     actorOf(actor),
		Payload:   payload,
	})
}

func requireParent(session domain.Session) error {
	if session.Role != domain.SessionRoleParent {
		return apperrors.NewForbidden("parent role required")
	}
	return nil
}
