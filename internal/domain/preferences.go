package domain

// Theme is the display theme of the portal.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// RememberedParent is the last parent login kept for the "remember me" option.
type RememberedParent struct {
	Email       string `json:"email"`
	StudentName string `json:"studentName"`
}
