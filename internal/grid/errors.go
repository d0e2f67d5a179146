package grid

import "fmt"

// TemplateError reports a column template that could not produce a usable
// cell view. It is returned from every operation that may bind cells.
type TemplateError struct {
	Column int
	Reason string
}

func (e *TemplateError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("frozen column template: %s", e.Reason)
	}
	return fmt.Sprintf("column %d template: %s", e.Column, e.Reason)
}
