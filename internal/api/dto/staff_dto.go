package dto

import "github.com/spec-kit/school-portal/internal/domain"

// StaffResponse is one directory record.
type StaffResponse struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Subject string             `json:"subject"`
	Email   string             `json:"email"`
	Color   string             `json:"color"`
	Role    domain.StaffRole   `json:"role"`
	Status  domain.StaffStatus `json:"status"`
}

// DirectoryResponse is the parent-facing directory with the contact actions currently offered.
type DirectoryResponse struct {
	Staff   []StaffResponse          `json:"staff"`
	Actions []domain.DirectoryAction `json:"actions"`
}

// StaffJoinRequest payload for a self-submitted join request.
type StaffJoinRequest struct {
	Name    string           `json:"name" validate:"notblank"`
	Subject string           `json:"subject" validate:"notblank"`
	Email   string           `json:"email" validate:"notblank,email"`
	Color   string           `json:"color"`
	Role    domain.StaffRole `json:"role" validate:"omitempty,oneof=teacher principal supervisor admin_staff"`
}

// ToStaffMember maps the payload to a new record.
func (r StaffJoinRequest) ToStaffMember() domain.StaffMember {
	return domain.StaffMember{
		Name:    r.Name,
		Subject: r.Subject,
		Email:   r.Email,
		Color:   r.Color,
		Role:    r.Role,
	}
}

// StaffRoleRequest payload for approve and role changes.
type StaffRoleRequest struct {
	Role domain.StaffRole `json:"role" validate:"omitempty,oneof=teacher principal supervisor admin_staff"`
}

// NewStaffResponse maps a record.
func NewStaffResponse(m domain.StaffMember) StaffResponse {
	return StaffResponse{
		ID:      m.ID,
		Name:    m.Name,
		Subject: m.Subject,
		Email:   m.Email,
		Color:   m.Color,
		Role:    m.Role,
		Status:  m.Status,
	}
}

// NewStaffList maps records, never returning nil.
func NewStaffList(members []domain.StaffMember) []StaffResponse {
	out := make([]StaffResponse, 0, len(members))
	for _, m := range members {
		out = append(out, NewStaffResponse(m))
	}
	return out
}
