package mastercmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
devices: 2
blocks: 4
nodes: [5, 6]
rules:
  enable: 1
  func: 0x03
  int_address_offset: 10
  count:
    1: 1
    3: 1
  dev_address:
    1: 3
    2: 101
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.DeviceCount)
	assert.Equal(t, 4, cfg.BlockCount)
	assert.Equal(t, 8, cfg.RowsPerBlock, "rows_per_block defaults to the template size")
	assert.Equal(t, []int{5, 6}, cfg.NodeSequence)
	assert.Equal(t, Int(1), cfg.Rules.Enable)
	assert.Equal(t, Int(3), cfg.Rules.Func)
	assert.Equal(t, 10, cfg.Rules.IntAddressOffset)
	assert.Equal(t, 0, cfg.Rules.IntAddressStart)
	assert.Equal(t, map[int]int{1: 1, 3: 1}, cfg.Rules.Count)
	assert.Equal(t, map[int]int{1: 3, 2: 101}, cfg.Rules.DevAddress)
}

func TestParseConfig_MissingScalarsAreBlank(t *testing.T) {
	cfg, err := ParseConfig([]byte("devices: 1\nblocks: 1\nnodes: [1]\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Rules.Enable.IsBlank())
	assert.True(t, cfg.Rules.Func.IsBlank())
	assert.False(t, cfg.Rules.Configured(1))
}

func TestParseConfig_Errors(t *testing.T) {
	for name, doc := range map[string]string{
		"bad yaml":   "devices: [",
		"bad enable": "rules:\n  enable: yes-please\n",
		"list value": "rules:\n  func: [1, 2]\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestConfiguration_MarshalRoundTrip(t *testing.T) {
	cfg := exampleConfig(2)
	cfg.Rules.Func = Blank

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "func:")

	back, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mastercmd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.DeviceCount)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfiguration_Validate(t *testing.T) {
	assert.NoError(t, exampleConfig(2).Validate())

	cfg := exampleConfig(2)
	cfg.RowsPerBlock = 6 // warning only
	assert.NoError(t, cfg.Validate())

	cfg.NodeSequence = nil
	var verr *ValidationError
	require.ErrorAs(t, cfg.Validate(), &verr)
	assert.Equal(t, "nodes", verr.Field)
	assert.Contains(t, verr.Error(), "Hint: give exactly one node id per device")
}

func TestValue(t *testing.T) {
	n, ok := Int(0).Int()
	assert.True(t, ok)
	assert.Equal(t, 0, n)
	assert.False(t, Int(0).IsBlank())
	assert.True(t, Blank.IsBlank())
	assert.Equal(t, "", Blank.String())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, 7, Blank.Or(7))

	v, err := ParseValue(" 0x1F ")
	require.NoError(t, err)
	assert.Equal(t, Int(31), v)

	v, err = ParseValue("   ")
	require.NoError(t, err)
	assert.Equal(t, Blank, v)

	_, err = ParseValue("twelve")
	assert.Error(t, err)
}
