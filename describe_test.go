package mastercmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	cfg := exampleConfig(2)
	cfg.BlockCount = 5
	output, err := Describe(cfg)
	require.NoError(t, err)

	assert.Contains(t, output, "MasterCmd: 2 devices x 5 blocks, 80 rows")
	assert.Contains(t, output, "Device 1 node 1\n")
	assert.Contains(t, output, "Device 2 node 2\n")
	assert.Contains(t, output, "  Block 1 [0] Enable=1 IntAddress=0 Count=1 Func=3 DevAddress=3\n")
	assert.Contains(t, output, "  Block 2 [1] Enable=1 IntAddress=1 Func=3 DevAddress=101\n")
	assert.Contains(t, output, "  Block 5 [4] unconfigured\n")
	assert.Contains(t, output, "  Block 1 [5] Enable=1 IntAddress=13 Count=1 Func=3 DevAddress=3\n")

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Len(t, lines, 1+2+10)
}

func TestDescribe_InvalidConfig(t *testing.T) {
	cfg := exampleConfig(2)
	cfg.NodeSequence = []int{1}
	_, err := Describe(cfg)
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	rows := mustGenerate(t, exampleConfig(2))

	addrs, err := Filter(rows, `Field == "IntAddress" && !Blank`)
	require.NoError(t, err)
	require.Len(t, addrs, 8)
	assert.Equal(t, ints(0, 1, 1, 2, 13, 14, 14, 15), valuesOf(addrs, FieldIntAddress))

	dev2, err := Filter(rows, `Device == 2 && Block in [1, 3] && Field == "Count"`)
	require.NoError(t, err)
	require.Len(t, dev2, 2)
	assert.Equal(t, 4, dev2[0].Index)
	assert.Equal(t, 6, dev2[1].Index)

	high, err := Filter(rows, `Value > 100`)
	require.NoError(t, err)
	for _, r := range high {
		assert.Equal(t, FieldDevAddress, r.Field)
	}
	assert.Len(t, high, 6)
}

func TestFilter_EmptyExpressionKeepsAll(t *testing.T) {
	rows := mustGenerate(t, exampleConfig(1))
	kept, err := Filter(rows, "  ")
	require.NoError(t, err)
	assert.Equal(t, rows, kept)
}

func TestFilter_InvalidExpression(t *testing.T) {
	rows := mustGenerate(t, exampleConfig(1))

	_, err := Filter(rows, `Device +`)
	assert.ErrorContains(t, err, "compile filter")

	_, err = Filter(rows, `Device + 1`)
	assert.Error(t, err, "non-boolean result is rejected at compile time")

	_, err = Filter(rows, `Bogus == 1`)
	assert.Error(t, err, "unknown identifiers are rejected")
}
