package termhost

import (
	"strings"

	"github.com/zjrosen/datagrid/internal/grid"
)

// TextTemplate creates a fresh cell label per call.
func TextTemplate(format FormatFunc, opts ...LabelOption) grid.Template {
	return grid.TemplateFunc(func() any {
		return NewCell(format, opts...)
	})
}

// Upper wraps format so its output is upper-cased.
func Upper(format FormatFunc) FormatFunc {
	return func(data any) string {
		return strings.ToUpper(format(data))
	}
}

// Stringer formats any row item with its String method, or "" otherwise.
func Stringer(data any) string {
	if s, ok := data.(interface{ String() string }); ok {
		return s.String()
	}
	if s, ok := data.(string); ok {
		return s
	}
	return ""
}
