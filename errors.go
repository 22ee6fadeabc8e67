package mastercmd

import "strings"

// ValidationError reports a configuration that cannot be generated.
// No rows are produced when it is returned.
type ValidationError struct {
	Field   string // configuration field at fault, e.g. "nodes"
	Message string
	Reason  string
	Hint    string
}

func (e *ValidationError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	return buf.String()
}
