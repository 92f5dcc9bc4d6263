package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StaffRole enumerates the positions a staff member can hold.
type StaffRole string

const (
	StaffRoleTeacher    StaffRole = "teacher"
	StaffRolePrincipal  StaffRole = "principal"
	StaffRoleSupervisor StaffRole = "supervisor"
	StaffRoleAdminStaff StaffRole = "admin_staff"
)

// Valid reports whether r is one of the known roles.
func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleTeacher, StaffRolePrincipal, StaffRoleSupervisor, StaffRoleAdminStaff:
		return true
	default:
		return false
	}
}

// StaffStatus is the approval state of a staff record.
type StaffStatus string

const (
	StaffStatusPending StaffStatus = "pending"
	StaffStatusActive  StaffStatus = "active"
	StaffStatusFrozen  StaffStatus = "frozen"
)

// Valid reports whether s is one of the known statuses.
func (s StaffStatus) Valid() bool {
	switch s {
	case StaffStatusPending, StaffStatusActive, StaffStatusFrozen:
		return true
	default:
		return false
	}
}

// StaffMember models a teacher, principal, supervisor or administrative employee listed in the directory.
type StaffMember struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Subject string      `json:"subject"`
	Email   string      `json:"email"`
	Color   string      `json:"color"`
	Role    StaffRole   `json:"role"`
	Status  StaffStatus `json:"status"`
}

// Public reports whether the record may be shown in the parent-facing directory.
func (s StaffMember) Public() bool {
	return s.Status == StaffStatusActive
}

// UnmarshalJSON accepts the id as a JSON string or number; numbers are kept
// in their literal form ("7"), matching the seeded numeric ids.
func (s *StaffMember) UnmarshalJSON(data []byte) error {
	type plain StaffMember
	var aux struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := decodeStaffID(aux.ID)
	if err != nil {
		return err
	}
	*s = StaffMember(aux.plain)
	s.ID = id
	return nil
}

func decodeStaffID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", err
		}
		return id, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return "", fmt.Errorf("staff id must be a string or number: %s", raw)
	}
	return n.String(), nil
}
