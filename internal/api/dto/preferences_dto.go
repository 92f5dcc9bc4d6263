package dto

import (
	"time"

	"github.com/spec-kit/school-portal/internal/domain"
)

// ThemeRequest payload.
type ThemeRequest struct {
	Theme domain.Theme `json:"theme" validate:"required,oneof=light dark"`
}

// ThemeResponse payload.
type ThemeResponse struct {
	Theme domain.Theme `json:"theme"`
}

// RememberedParentResponse prefills the parent login form. Both fields are empty when nothing is remembered.
type RememberedParentResponse struct {
	Email       string `json:"email"`
	StudentName string `json:"student_name"`
}

// ActivityResponse is one live monitor line.
type ActivityResponse struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Actor   string    `json:"actor"`
	Subject string    `json:"subject"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

// NewActivityList maps feed entries.
func NewActivityList(entries []domain.ActivityEntry) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActivityResponse{
			ID:      e.ID,
			Type:    e.Type,
			Actor:   e.Actor,
			Subject: e.Subject,
			Detail:  e.Detail,
			At:      e.At,
		})
	}
	return out
}
