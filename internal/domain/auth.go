package domain

import "time"

// SessionRole differentiates the three portal views.
type SessionRole string

const (
	SessionRoleParent  SessionRole = "parent"
	SessionRoleTeacher SessionRole = "teacher"
	SessionRoleAdmin   SessionRole = "admin"
)

// Valid reports whether r is a known portal role.
func (r SessionRole) Valid() bool {
	switch r {
	case SessionRoleParent, SessionRoleTeacher, SessionRoleAdmin:
		return true
	default:
		return false
	}
}

// AdminDisplayName is shown for every admin session.
const AdminDisplayName = "مدير النظام"

// Session is the resolved identity of a logged-in portal user. It is never persisted.
type Session struct {
	ID          string      `json:"id"`
	Role        SessionRole `json:"role"`
	Email       string      `json:"email"`
	DisplayName string      `json:"displayName"`
	StudentName string      `json:"studentName,omitempty"`
	Class       string      `json:"class,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// ClassLabel joins a level and section the way the parent portal displays them.
func ClassLabel(level, section string) string {
	return level + " / " + section
}
