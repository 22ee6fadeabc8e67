package mastercmd

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Value is an optional integer cell value. The zero Value is blank.
type Value struct {
	n   int
	set bool
}

// Blank is the unset Value.
var Blank = Value{}

// Int returns a Value holding n.
func Int(n int) Value {
	return Value{n: n, set: true}
}

// ParseValue parses a decimal or 0x-prefixed hex integer.
// An empty (or all-space) string yields Blank.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Blank, nil
	}
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return Blank, fmt.Errorf("invalid integer %q", s)
	}
	return Int(int(n)), nil
}

// Int returns the held integer and whether the value is set.
func (v Value) Int() (int, bool) {
	return v.n, v.set
}

// IsBlank reports whether the value is unset.
func (v Value) IsBlank() bool {
	return !v.set
}

// IsZero reports whether the value is unset, so YAML omitempty drops it.
func (v Value) IsZero() bool {
	return !v.set
}

// Or returns the held integer, or def when blank.
func (v Value) Or(def int) int {
	if !v.set {
		return def
	}
	return v.n
}

// String formats the value in decimal, or "" when blank.
func (v Value) String() string {
	if !v.set {
		return ""
	}
	return strconv.Itoa(v.n)
}

// cellValue returns what gets written to a spreadsheet cell (nil leaves it empty).
func (v Value) cellValue() any {
	if !v.set {
		return nil
	}
	return v.n
}

// UnmarshalYAML accepts integers, hex strings and null.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	if node.Tag == "!!null" {
		*v = Blank
		return nil
	}
	parsed, err := ParseValue(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = parsed
	return nil
}

// MarshalYAML writes blank values as null.
func (v Value) MarshalYAML() (any, error) {
	if !v.set {
		return nil, nil
	}
	return v.n, nil
}
