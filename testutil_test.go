package mastercmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// exampleConfig returns a configuration with partially configured blocks:
//
//	block 1: Count 1, DevAddress 3
//	block 2: DevAddress 101 only
//	block 3: Count 1, DevAddress 116
//	block 4: Count 1, DevAddress 142
func exampleConfig(devices int) Configuration {
	nodes := make([]int, devices)
	for i := range nodes {
		nodes[i] = i + 1
	}
	return Configuration{
		DeviceCount:  devices,
		BlockCount:   4,
		RowsPerBlock: TemplateRows,
		NodeSequence: nodes,
		Rules: Rules{
			Count:            map[int]int{1: 1, 3: 1, 4: 1},
			DevAddress:       map[int]int{1: 3, 2: 101, 3: 116, 4: 142},
			Enable:           Int(1),
			Func:             Int(3),
			IntAddressOffset: 10,
		},
	}
}

// mustGenerate generates cfg and fails the test on error.
func mustGenerate(t *testing.T, cfg Configuration) []Row {
	t.Helper()
	rows, err := Generate(cfg)
	require.NoError(t, err)
	return rows
}

// valuesOf collects the values of field in row order, one per block.
func valuesOf(rows []Row, field Field) []Value {
	var out []Value
	for _, r := range rows {
		if r.Field == field {
			out = append(out, r.ConfigValue)
		}
	}
	return out
}

// ints builds a []Value from plain integers.
func ints(ns ...int) []Value {
	out := make([]Value, len(ns))
	for i, n := range ns {
		out[i] = Int(n)
	}
	return out
}
