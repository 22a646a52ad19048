// Package theme provides the Lip Gloss color palette and reusable styles
// for the proctor dashboard TUI. It is a leaf package with no internal
// imports to avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Severity colors.
var (
	ColorSeverityHigh   = lipgloss.Color("#dc2626")
	ColorSeverityMedium = lipgloss.Color("#d97706")
	ColorSeverityLow    = lipgloss.Color("#2563eb")
	ColorSeverityNone   = lipgloss.Color("#9ca3af")
)

// Session phase colors.
var (
	ColorIdle       = lipgloss.Color("#4b5563")
	ColorMonitoring = lipgloss.Color("#16a34a")
	ColorStopped    = lipgloss.Color("#854d0e")
)

// UI chrome colors.
var (
	ColorBorder    = lipgloss.Color("#4b5563")
	ColorDimmed    = lipgloss.Color("#6b7280")
	ColorBright    = lipgloss.Color("#f9fafb")
	ColorHealthy   = lipgloss.Color("#22c55e")
	ColorWarning   = lipgloss.Color("#d97706")
	ColorDanger    = lipgloss.Color("#dc2626")
	ColorHighlight = lipgloss.Color("#f59e0b")
	ColorAccent    = lipgloss.Color("#06b6d4")
)

// SeverityColor returns the color for an alert severity label.
func SeverityColor(severity string) lipgloss.Color {
	switch severity {
	case "high":
		return ColorSeverityHigh
	case "medium":
		return ColorSeverityMedium
	case "low":
		return ColorSeverityLow
	default:
		return ColorSeverityNone
	}
}

// PhaseColor returns the color for a session phase label.
func PhaseColor(phase string) lipgloss.Color {
	switch phase {
	case "monitoring":
		return ColorMonitoring
	case "stopped-by-server":
		return ColorStopped
	default:
		return ColorIdle
	}
}

// Shared styles.
var (
	StyleHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorBright)
	StyleDimmed = lipgloss.NewStyle().Foreground(ColorDimmed)
	StyleDanger = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
)
