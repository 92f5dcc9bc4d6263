package dto

import (
	"time"

	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/service"
)

// VoiceRoomCreateRequest asks for a voice room with a staff member.
type VoiceRoomCreateRequest struct {
	StaffID string `json:"staff_id" validate:"notblank"`
}

// InquiryCreateRequest sends an e-mail inquiry.
type InquiryCreateRequest struct {
	StaffID string `json:"staff_id" validate:"notblank"`
	Subject string `json:"subject" validate:"notblank"`
	Content string `json:"content" validate:"notblank"`
}

// ToInquiryInput maps the payload.
func (r InquiryCreateRequest) ToInquiryInput() service.InquiryInput {
	return service.InquiryInput{StaffID: r.StaffID, Subject: r.Subject, Content: r.Content}
}

// InquiryReplyRequest payload.
type InquiryReplyRequest struct {
	Reply string `json:"reply" validate:"notblank"`
}

// VoiceRoomResponse is one voice-room request.
type VoiceRoomResponse struct {
	ID           string                 `json:"id"`
	StaffID      string                 `json:"staff_id"`
	ParentName   string                 `json:"parent_name"`
	StudentName  string                 `json:"student_name"`
	StudentClass string                 `json:"student_class"`
	CreatedAt    time.Time              `json:"created_at"`
	Status       domain.VoiceRoomStatus `json:"status"`
}

// InquiryResponse is one e-mail inquiry.
type InquiryResponse struct {
	ID          string               `json:"id"`
	StaffID     string               `json:"staff_id"`
	Subject     string               `json:"subject"`
	ParentName  string               `json:"parent_name"`
	ParentEmail string               `json:"parent_email"`
	Content     string               `json:"content"`
	CreatedAt   time.Time            `json:"created_at"`
	Status      domain.InquiryStatus `json:"status"`
	Reply       string               `json:"reply,omitempty"`
}

// InboxResponse is a teacher's inbox.
type InboxResponse struct {
	VoiceRooms []VoiceRoomResponse `json:"voice_rooms"`
	Emails     []InquiryResponse   `json:"emails"`
}

// NewVoiceRoomResponse maps a request.
func NewVoiceRoomResponse(r domain.VoiceRoomRequest) VoiceRoomResponse {
	return VoiceRoomResponse{
		ID:           r.ID,
		StaffID:      r.StaffID,
		ParentName:   r.ParentName,
		StudentName:  r.StudentName,
		StudentClass: r.StudentClass,
		CreatedAt:    r.CreatedAt,
		Status:       r.Status,
	}
}

// NewInquiryResponse maps an inquiry.
func NewInquiryResponse(e domain.EmailInquiry) InquiryResponse {
	return InquiryResponse{
		ID:          e.ID,
		StaffID:     e.StaffID,
		Subject:     e.Subject,
		ParentName:  e.ParentName,
		ParentEmail: e.ParentEmail,
		Content:     e.Content,
		CreatedAt:   e.CreatedAt,
		Status:      e.Status,
		Reply:       e.Reply,
	}
}

// NewInboxResponse maps an inbox.
func NewInboxResponse(inbox domain.Inbox) InboxResponse {
	out := InboxResponse{
		VoiceRooms: make([]VoiceRoomResponse, 0, len(inbox.VoiceRooms)),
		Emails:     make([]InquiryResponse, 0, len(inbox.Emails)),
	}
	for _, r := range inbox.VoiceRooms {
		out.VoiceRooms = append(out.VoiceRooms, NewVoiceRoomResponse(r))
	}
	for _, e := range inbox.Emails {
		out.Emails = append(out.Emails, NewInquiryResponse(e))
	}
	return out
}
