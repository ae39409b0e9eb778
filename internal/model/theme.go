package model

// Theme is the persisted light/dark preference. The zero value means no
// preference has been saved yet.
type Theme string

// Themes.
const (
	ThemeAuto  Theme = ""
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored or user-supplied value to a Theme. Anything other
// than "dark" or "light" is treated as no preference.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	default:
		return ThemeAuto
	}
}

// Toggle returns the opposite theme. Auto is treated as light, the scheme
// shown when nothing says otherwise, so it toggles to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
