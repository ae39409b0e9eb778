// Package ui holds the terminal styles used by the CLI.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/notify"
)

var (
	// Terminal palette colors so the output follows the user's scheme.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "2", Dark: "2"}  // Green
	ColorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}  // Red
	ColorPrimary = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}  // Magenta
	ColorInfo    = lipgloss.AdaptiveColor{Light: "6", Dark: "6"}  // Cyan
	ColorMuted   = lipgloss.AdaptiveColor{Light: "8", Dark: "8"}  // Gray
	ColorWarning = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}  // Yellow
	ColorLost    = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}  // Red
	ColorFound   = lipgloss.AdaptiveColor{Light: "4", Dark: "12"} // Blue

	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleInfo    lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleBold    lipgloss.Style

	StyleTitle     lipgloss.Style
	StylePaneLost  lipgloss.Style
	StylePaneFound lipgloss.Style
	StyleCard      lipgloss.Style
	StyleCardTitle lipgloss.Style
	StyleTag       lipgloss.Style

	IconSuccess = "✔"
	IconError   = "✘"
	IconInfo    = "ℹ"
	IconWarning = "⚠"
	IconImage   = "🖼"
)

func init() {
	SetTheme(model.ThemeAuto)
}

// SetTheme applies the saved theme. Auto lets lipgloss detect the
// terminal background.
func SetTheme(theme model.Theme) {
	switch theme {
	case model.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	case model.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	}

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleError = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleInfo = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleBold = lipgloss.NewStyle().Bold(true)

	StyleTitle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Underline(true)
	StylePaneLost = lipgloss.NewStyle().Foreground(ColorLost).Bold(true)
	StylePaneFound = lipgloss.NewStyle().Foreground(ColorFound).Bold(true)
	StyleCard = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1).
		Width(60)
	StyleCardTitle = lipgloss.NewStyle().Bold(true)
	StyleTag = lipgloss.NewStyle().Foreground(ColorInfo).Italic(true)
}

// FormatSuccess returns a success message with icon
func FormatSuccess(msg string) string {
	return StyleSuccess.Render(IconSuccess + " " + msg)
}

// FormatError returns an error message with icon
func FormatError(msg string) string {
	return StyleError.Render(IconError + " " + msg)
}

// FormatInfo returns an info message with icon
func FormatInfo(msg string) string {
	return StyleInfo.Render(IconInfo + " " + msg)
}

// FormatWarning returns a warning message with icon
func FormatWarning(msg string) string {
	return StyleWarning.Render(IconWarning + " " + msg)
}

// FormatMuted returns muted/subtle text
func FormatMuted(text string) string {
	return StyleMuted.Render(text)
}

// FormatNotice renders a notice in the style matching its level.
func FormatNotice(n notify.Notice) string {
	switch n.Level {
	case notify.LevelSuccess:
		return FormatSuccess(n.Message)
	case notify.LevelWarning:
		return FormatWarning(n.Message)
	case notify.LevelError:
		return FormatError(n.Message)
	default:
		return FormatInfo(n.Message)
	}
}
