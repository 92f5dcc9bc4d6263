package domain

// PrimaryColor is the accent palette of the portal.
type PrimaryColor string

const (
	ColorEmerald PrimaryColor = "emerald"
	ColorBlue    PrimaryColor = "blue"
	ColorRose    PrimaryColor = "rose"
	ColorViolet  PrimaryColor = "violet"
	ColorZinc    PrimaryColor = "zinc"
)

// Valid reports whether c is one of the supported palettes.
func (c PrimaryColor) Valid() bool {
	switch c {
	case ColorEmerald, ColorBlue, ColorRose, ColorViolet, ColorZinc:
		return true
	default:
		return false
	}
}

// SiteSettings holds branding and feature toggles.
type SiteSettings struct {
	SiteTitle            string       `json:"siteTitle"`
	SchoolName           string       `json:"schoolName"`
	MinistryName         string       `json:"ministryName"`
	PrimaryColor         PrimaryColor `json:"primaryColor"`
	EnableVoiceRoom      bool         `json:"enableVoiceRoom"`
	EnableVoiceRecording bool         `json:"enableVoiceRecording"`
	EnableEmail          bool         `json:"enableEmail"`
}

// DefaultSiteSettings returns the settings used before anything has been saved.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteTitle:            "بوابة تواصل الرقمية",
		SchoolName:           "الابتدائية 141 بجدة",
		MinistryName:         "وزارة التعليم",
		PrimaryColor:         ColorEmerald,
		EnableVoiceRoom:      true,
		EnableVoiceRecording: true,
		EnableEmail:          true,
	}
}

// Branding is the flattened, read-only view of SiteSettings used by the layout and directory.
type Branding struct {
	SiteTitle            string       `json:"siteTitle"`
	MinistryLabel        string       `json:"ministryLabel"`
	SchoolLabel          string       `json:"schoolLabel"`
	PrimaryColor         PrimaryColor `json:"primaryColor"`
	EnableVoiceRoom      bool         `json:"enableVoiceRoom"`
	EnableVoiceRecording bool         `json:"enableVoiceRecording"`
	EnableEmail          bool         `json:"enableEmail"`
}

// Branding projects the settings into their display labels.
func (s SiteSettings) Branding() Branding {
	return Branding{
		SiteTitle:            s.SiteTitle,
		MinistryLabel:        s.MinistryName,
		SchoolLabel:          s.SchoolName,
		PrimaryColor:         s.PrimaryColor,
		EnableVoiceRoom:      s.EnableVoiceRoom,
		EnableVoiceRecording: s.EnableVoiceRecording,
		EnableEmail:          s.EnableEmail,
	}
}

// DirectoryAction names a contact channel offered on a directory card.
type DirectoryAction string

const (
	ActionVoiceRoom      DirectoryAction = "voice_room"
	ActionVoiceRecording DirectoryAction = "voice_recording"
	ActionEmail          DirectoryAction = "email"
)

// VisibleActions lists the directory actions enabled by the feature flags.
func (s SiteSettings) VisibleActions() []DirectoryAction {
	actions := make([]DirectoryAction, 0, 3)
	if s.EnableVoiceRoom {
		actions = append(actions, ActionVoiceRoom)
	}
	if s.EnableVoiceRecording {
		actions = append(actions, ActionVoiceRecording)
	}
	if s.EnableEmail {
		actions = append(actions, ActionEmail)
	}
	return actions
}
