// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"}

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Grid
	HeaderForegroundColor = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#94E2D5"}
	FrozenForegroundColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#CBA6F7"}
	SelectionBgColor      = lipgloss.AdaptiveColor{Light: "#D0D0F0", Dark: "#3C3C6E"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#E0A100", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	HeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(HeaderForegroundColor)
	FrozenStyle    = lipgloss.NewStyle().Foreground(FrozenForegroundColor)
	CellStyle      = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	StatusBarStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor).Padding(0, 1)
	HintStyle      = lipgloss.NewStyle().Foreground(TextMutedColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)
