package styles

// ColorToken names a color users can override in their config.
type ColorToken string

const (
	TokenTextPrimary      ColorToken = "text.primary"
	TokenTextSecondary    ColorToken = "text.secondary"
	TokenTextMuted        ColorToken = "text.muted"
	TokenBorderDefault    ColorToken = "border.default"
	TokenBorderFocus      ColorToken = "border.focus"
	TokenHeaderForeground ColorToken = "grid.header"
	TokenFrozenForeground ColorToken = "grid.frozen"
	TokenSelectionBg      ColorToken = "grid.selection"
	TokenStatusSuccess    ColorToken = "status.success"
	TokenStatusWarning    ColorToken = "status.warning"
	TokenStatusError      ColorToken = "status.error"
)

// AllTokens returns every overridable token.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenBorderDefault,
		TokenBorderFocus,
		TokenHeaderForeground,
		TokenFrozenForeground,
		TokenSelectionBg,
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,
	}
}
