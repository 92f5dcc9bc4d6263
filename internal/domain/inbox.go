package domain

import "time"

// VoiceRoomStatus tracks a parent's request to open a voice room.
type VoiceRoomStatus string

const (
	VoiceRoomPending  VoiceRoomStatus = "pending"
	VoiceRoomAccepted VoiceRoomStatus = "accepted"
	VoiceRoomRejected VoiceRoomStatus = "rejected"
)

// VoiceRoomRequest is a parent's request to talk with a staff member.
type VoiceRoomRequest struct {
	ID           string          `json:"id"`
	StaffID      string          `json:"staffId"`
	ParentName   string          `json:"parentName"`
	StudentName  string          `json:"studentName"`
	StudentClass string          `json:"studentClass"`
	CreatedAt    time.Time       `json:"createdAt"`
	Status       VoiceRoomStatus `json:"status"`
}

// InquiryStatus tracks an e-mail inquiry through the teacher's inbox.
type InquiryStatus string

const (
	InquiryUnread  InquiryStatus = "unread"
	InquiryRead    InquiryStatus = "read"
	InquiryReplied InquiryStatus = "replied"
)

// EmailInquiry is a message sent by a parent to a staff member.
type EmailInquiry struct {
	ID          string        `json:"id"`
	StaffID     string        `json:"staffId"`
	Subject     string        `json:"subject"`
	ParentName  string        `json:"parentName"`
	ParentEmail string        `json:"parentEmail"`
	Content     string        `json:"content"`
	CreatedAt   time.Time     `json:"createdAt"`
	Status      InquiryStatus `json:"status"`
	Reply       string        `json:"reply,omitempty"`
}

// Inbox is the persisted set of requests and inquiries for all staff.
type Inbox struct {
	VoiceRooms []VoiceRoomRequest `json:"voiceRooms"`
	Emails     []EmailInquiry     `json:"emails"`
}
