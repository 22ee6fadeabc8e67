package mastercmd

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Describe generates cfg and returns a human-readable tree of devices and
// blocks with the values of their configured parameters.
// Useful for checking IntAddress continuation before rendering.
func Describe(cfg Configuration) (string, error) {
	rows, err := Generate(cfg)
	if err != nil {
		return "", err
	}
	return DescribeRows(rows), nil
}

// DescribeRows writes the tree for already generated (or read back) rows.
func DescribeRows(rows []Row) string {
	var b strings.Builder
	devices, blocks := 0, 0
	for _, r := range rows {
		devices = max(devices, r.DeviceNo)
		blocks = max(blocks, r.BlockNo)
	}
	fmt.Fprintf(&b, "MasterCmd: %d devices x %d blocks, %d rows\n", devices, blocks, len(rows))

	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && rows[end].DeviceNo == rows[start].DeviceNo && rows[end].BlockNo == rows[start].BlockNo {
			end++
		}
		block := rows[start:end]
		if start == 0 || rows[start-1].DeviceNo != block[0].DeviceNo {
			fmt.Fprintf(&b, "Device %d node %d\n", block[0].DeviceNo, block[0].NodeNo)
		}
		describeBlock(&b, block)
		start = end
	}
	return b.String()
}

// describeBlock writes one line per block: "Block 2 [5] IntAddress=1 Count=1".
func describeBlock(b *strings.Builder, block []Row) {
	fmt.Fprintf(b, "  Block %d [%d]", block[0].BlockNo, block[0].Index)
	var parts []string
	for _, r := range block {
		if r.ConfigValue.IsBlank() || r.Field == FieldNode {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", r.Field, r.ConfigValue))
	}
	if len(parts) == 0 {
		b.WriteString(" unconfigured\n")
		return
	}
	b.WriteString(" " + strings.Join(parts, " ") + "\n")
}

// RowEnv is the environment a filter expression is evaluated against.
type RowEnv struct {
	Device    int
	Block     int
	Node      int
	Index     int
	Field     string
	Parameter string
	Value     int // 0 when Blank
	Blank     bool
}

func newRowEnv(r Row) RowEnv {
	return RowEnv{
		Device:    r.DeviceNo,
		Block:     r.BlockNo,
		Node:      r.NodeNo,
		Index:     r.Index,
		Field:     string(r.Field),
		Parameter: r.Parameter,
		Value:     r.ConfigValue.Or(0),
		Blank:     r.ConfigValue.IsBlank(),
	}
}

// CompileFilter compiles a boolean row filter such as
// `Field == "IntAddress" && !Blank`.
func CompileFilter(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(RowEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}
	return program, nil
}

// Filter returns the rows for which expression is true, preserving order.
// An empty expression keeps every row.
func Filter(rows []Row, expression string) ([]Row, error) {
	if strings.TrimSpace(expression) == "" {
		return rows, nil
	}
	program, err := CompileFilter(expression)
	if err != nil {
		return nil, err
	}
	var kept []Row
	for _, r := range rows {
		out, err := expr.Run(program, newRowEnv(r))
		if err != nil {
			return nil, fmt.Errorf("evaluate filter %q on %s: %w", expression, r.Parameter, err)
		}
		if out.(bool) {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
