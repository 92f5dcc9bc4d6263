package dto

import (
	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/service"
)

// SettingsResponse mirrors the site settings.
type SettingsResponse struct {
	SiteTitle            string              `json:"site_title"`
	SchoolName           string              `json:"school_name"`
	MinistryName         string              `json:"ministry_name"`
	PrimaryColor         domain.PrimaryColor `json:"primary_color"`
	EnableVoiceRoom      bool                `json:"enable_voice_room"`
	EnableVoiceRecording bool                `json:"enable_voice_recording"`
	EnableEmail          bool                `json:"enable_email"`
}

// UpdateSettingsRequest payload. Omitted fields keep their value.
type UpdateSettingsRequest struct {
	SiteTitle            *string              `json:"site_title"`
	SchoolName           *string              `json:"school_name"`
	MinistryName         *string              `json:"ministry_name"`
	PrimaryColor         *domain.PrimaryColor `json:"primary_color" validate:"omitempty,oneof=emerald blue rose violet zinc"`
	EnableVoiceRoom      *bool                `json:"enable_voice_room"`
	EnableVoiceRecording *bool                `json:"enable_voice_recording"`
	EnableEmail          *bool                `json:"enable_email"`
}

// ToPatch maps the payload to a settings patch.
func (r UpdateSettingsRequest) ToPatch() service.SettingsPatch {
	return service.SettingsPatch{
		SiteTitle:            r.SiteTitle,
		SchoolName:           r.SchoolName,
		MinistryName:         r.MinistryName,
		PrimaryColor:         r.PrimaryColor,
		EnableVoiceRoom:      r.EnableVoiceRoom,
		EnableVoiceRecording: r.EnableVoiceRecording,
		EnableEmail:          r.EnableEmail,
	}
}

// BrandingResponse is the public layout projection.
type BrandingResponse struct {
	SiteTitle            string              `json:"site_title"`
	MinistryLabel        string              `json:"ministry_label"`
	SchoolLabel          string              `json:"school_label"`
	PrimaryColor         domain.PrimaryColor `json:"primary_color"`
	EnableVoiceRoom      bool                `json:"enable_voice_room"`
	EnableVoiceRecording bool                `json:"enable_voice_recording"`
	EnableEmail          bool                `json:"enable_email"`
}

// SecurityResponse exposes the admin credential set to the security tab.
type SecurityResponse struct {
	PrimaryEmail    string   `json:"primary_email"`
	PrimaryPassword string   `json:"primary_password"`
	SecondaryEmails []string `json:"secondary_emails"`
}

// SecurityUpdateRequest replaces the credential set.
type SecurityUpdateRequest struct {
	PrimaryEmail    string   `json:"primary_email" validate:"notblank,email"`
	PrimaryPassword string   `json:"primary_password" validate:"notblank"`
	SecondaryEmails []string `json:"secondary_emails"`
}

// ToAdminAuth maps the payload.
func (r SecurityUpdateRequest) ToAdminAuth() domain.AdminAuth {
	return domain.AdminAuth{
		PrimaryEmail:    r.PrimaryEmail,
		PrimaryPass:     r.PrimaryPassword,
		SecondaryEmails: r.SecondaryEmails,
	}
}

// SecondaryEmailRequest adds one secondary admin.
type SecondaryEmailRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// NewSettingsResponse maps settings.
func NewSettingsResponse(s domain.SiteSettings) SettingsResponse {
	return SettingsResponse{
		SiteTitle:            s.SiteTitle,
		SchoolName:           s.SchoolName,
		MinistryName:         s.MinistryName,
		PrimaryColor:         s.PrimaryColor,
		EnableVoiceRoom:      s.EnableVoiceRoom,
		EnableVoiceRecording: s.EnableVoiceRecording,
		EnableEmail:          s.EnableEmail,
	}
}

// NewBrandingResponse maps the branding projection.
func NewBrandingResponse(b domain.Branding) BrandingResponse {
	return BrandingResponse{
		SiteTitle:            b.SiteTitle,
		MinistryLabel:        b.MinistryLabel,
		SchoolLabel:          b.SchoolLabel,
		PrimaryColor:         b.PrimaryColor,
		EnableVoiceRoom:      b.EnableVoiceRoom,
		EnableVoiceRecording: b.EnableVoiceRecording,
		EnableEmail:          b.EnableEmail,
	}
}

// NewSecurityResponse maps admin credentials.
func NewSecurityResponse(a domain.AdminAuth) SecurityResponse {
	secondary := a.SecondaryEmails
	if secondary == nil {
		secondary = []string{}
	}
	return SecurityResponse{
		PrimaryEmail:    a.PrimaryEmail,
		PrimaryPassword: a.PrimaryPass,
		SecondaryEmails: secondary,
	}
}
