package domain

import "strings"

// AdminAuth is the shared admin credential set. Secondary admins log in with the primary password.
type AdminAuth struct {
	PrimaryEmail    string   `json:"primaryEmail"`
	PrimaryPass     string   `json:"primaryPass"`
	SecondaryEmails []string `json:"secondaryEmails"`
}

// NormalizeEmail trims and lowercases an address for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAdminEmail reports whether email names the primary or any secondary admin.
func (a AdminAuth) IsAdminEmail(email string) bool {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return false
	}
	if normalized == NormalizeEmail(a.PrimaryEmail) {
		return true
	}
	for _, secondary := range a.SecondaryEmails {
		if NormalizeEmail(secondary) == normalized {
			return true
		}
	}
	return false
}

// Authenticate checks email and password against the credential set.
func (a AdminAuth) Authenticate(email, password string) bool {
	return a.IsAdminEmail(email) && password == a.PrimaryPass
}

// HasSecondary reports whether email is already listed verbatim.
func (a AdminAuth) HasSecondary(email string) bool {
	for _, existing := range a.SecondaryEmails {
		if existing == email {
			return true
		}
	}
	return false
}
