package styles

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ApplyTheme overrides colors by token and rebuilds the derived styles.
// Nothing is applied when any entry is invalid.
func ApplyTheme(colors map[string]string) error {
	for key, value := range colors {
		if !IsValidToken(ColorToken(key)) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !IsValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
	}

	for key, value := range colors {
		c := lipgloss.AdaptiveColor{Light: value, Dark: value}
		switch ColorToken(key) {
		case TokenTextPrimary:
			TextPrimaryColor = c
		case TokenTextSecondary:
			TextSecondaryColor = c
		case TokenTextMuted:
			TextMutedColor = c
		case TokenBorderDefault:
			BorderDefaultColor = c
		case TokenBorderFocus:
			BorderFocusColor = c
		case TokenHeaderForeground:
			HeaderForegroundColor = c
		case TokenFrozenForeground:
			FrozenForegroundColor = c
		case TokenSelectionBg:
			SelectionBgColor = c
		case TokenStatusSuccess:
			StatusSuccessColor = c
		case TokenStatusWarning:
			StatusWarningColor = c
		case TokenStatusError:
			StatusErrorColor = c
		}
	}
	rebuildStyles()
	return nil
}

// rebuildStyles recreates styles that captured colors at creation time.
func rebuildStyles() {
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(HeaderForegroundColor)
	FrozenStyle = lipgloss.NewStyle().Foreground(FrozenForegroundColor)
	CellStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	StatusBarStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor).Padding(0, 1)
	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)
}

func IsValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func IsValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
