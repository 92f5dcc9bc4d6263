package events

import (
	"time"

	"github.com/spec-kit/school-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffSubmitted   EventType = "staff_submitted"
	EventStaffApproved    EventType = "staff_approved"
	EventStaffRejected    EventType = "staff_rejected"
	EventStaffFrozen      EventType = "staff_frozen"
	EventStaffUnfrozen    EventType = "staff_unfrozen"
	EventStaffRoleChanged EventType = "staff_role_changed"
	EventSessionStarted   EventType = "session_started"
	EventVoiceRoomRequest EventType = "voice_room_requested"
	EventVoiceRoomAnswer  EventType = "voice_room_answered"
	EventInquirySent      EventType = "inquiry_sent"
	EventInquiryReplied   EventType = "inquiry_replied"
	EventSettingsUpdated  EventType = "settings_updated"
	EventSecurityUpdated  EventType = "security_updated"
)

// AllEventTypes lists every event type, in declaration order.
var AllEventTypes = []EventType{
	EventStaffSubmitted,
	EventStaffApproved,
	EventStaffRejected,
	EventStaffFrozen,
	EventStaffUnfrozen,
	EventStaffRoleChanged,
	EventSessionStarted,
	EventVoiceRoomRequest,
	EventVoiceRoomAnswer,
	EventInquirySent,
	EventInquiryReplied,
	EventSettingsUpdated,
	EventSecurityUpdated,
}

// Actor describes who triggered an event.
type Actor struct {
	Role domain.SessionRole `json:"role,omitempty"`
	Name string             `json:"name,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StaffPayload accompanies staff lifecycle events.
type StaffPayload struct {
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	OldRole   domain.StaffRole   `json:"old_role,omitempty"`
	NewRole   domain.StaffRole   `json:"new_role,omitempty"`
	OldStatus domain.StaffStatus `json:"old_status,omitempty"`
	NewStatus domain.StaffStatus `json:"new_status,omitempty"`
}

// SessionPayload accompanies session_started.
type SessionPayload struct {
	Role  domain.SessionRole `json:"role"`
	Email string             `json:"email"`
}

// InboxPayload accompanies voice-room and inquiry events.
type InboxPayload struct {
	StaffID     string `json:"staff_id"`
	ParentName  string `json:"parent_name"`
	ParentEmail string `json:"parent_email,omitempty"`
	StudentName string `json:"student_name,omitempty"`
	Status      string `json:"status,omitempty"`
}
