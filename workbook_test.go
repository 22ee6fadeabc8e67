package mastercmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBytes_ReadRowsRoundTrip(t *testing.T) {
	cfg := exampleConfig(3)
	data, err := Bytes(cfg)
	require.NoError(t, err)

	got, err := ReadRows(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, mustGenerate(t, cfg), got)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MasterCmd.xlsx")
	require.NoError(t, WriteFile(exampleConfig(1), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Port1", "Port2"}, f.GetSheetList())

	rows, err := f.GetRows("Port1")
	require.NoError(t, err)
	assert.Len(t, rows, 1+32)
}

func TestWriteFile_InvalidConfigLeavesNoFile(t *testing.T) {
	cfg := exampleConfig(2)
	cfg.NodeSequence = cfg.NodeSequence[:1]
	path := filepath.Join(t.TempDir(), "bad.xlsx")

	err := WriteFile(cfg, path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuild_RejectsBadGeometry(t *testing.T) {
	cfg := exampleConfig(1)
	cfg.RowsPerBlock = -1
	_, err := Build(cfg)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rows_per_block", verr.Field)
}

func TestReadRows_CustomSheet(t *testing.T) {
	cfg := exampleConfig(1)
	data, err := Bytes(cfg, WithSheetNames("Master", "Spare"))
	require.NoError(t, err)

	_, err = ReadRows(bytes.NewReader(data))
	assert.Error(t, err, "default sheet name is missing")

	rows, err := ReadRows(bytes.NewReader(data), WithSheetNames("Master", "Spare"))
	require.NoError(t, err)
	assert.Len(t, rows, 32)
}

func TestReadRows_Malformed(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Port1"))
	require.NoError(t, f.SetSheetRow("Port1", "A1", &[]any{"Device No.", "Block No.", "Node No.", "Parameter", "ConfigValue"}))
	require.NoError(t, f.SetSheetRow("Port1", "A2", &[]any{"x", 1, 1, "MCM.CONFIG.Port1MasterCmd[0].Enable"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := ReadRows(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Port1 row 2")
	assert.Contains(t, err.Error(), "Device No.")
}

func TestReadRows_NotAWorkbook(t *testing.T) {
	_, err := ReadRows(bytes.NewReader([]byte("not a zip")))
	assert.Error(t, err)
}

func TestWriteFile_InvalidConfigKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MasterCmd.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("previous workbook"), 0o644))

	cfg := exampleConfig(2)
	cfg.NodeSequence = []int{1}
	var verr *ValidationError
	require.ErrorAs(t, WriteFile(cfg, path), &verr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous workbook", string(data))
}

func TestWriteFile_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MasterCmd.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("previous workbook"), 0o644))
	require.NoError(t, WriteFile(exampleConfig(1), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Port1", "Port2"}, f.GetSheetList())
}

func TestWriteFile_UncreatablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "MasterCmd.xlsx")
	err := WriteFile(exampleConfig(1), path)
	assert.ErrorContains(t, err, "create output file")
}

func TestReadRows_RejectsNonPositiveNumbers(t *testing.T) {
	tests := []struct {
		name   string
		row    []any
		column string
	}{
		{"block zero", []any{1, 0, 1, "MCM.CONFIG.Port1MasterCmd[0].Enable", 1}, "Block No."},
		{"negative device", []any{-2, 1, 1, "MCM.CONFIG.Port1MasterCmd[0].Enable", 1}, "Device No."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := excelize.NewFile()
			defer f.Close()
			require.NoError(t, f.SetSheetName("Sheet1", "Port1"))
			require.NoError(t, f.SetSheetRow("Port1", "A1", &[]any{"Device No.", "Block No.", "Node No.", "Parameter", "ConfigValue"}))
			require.NoError(t, f.SetSheetRow("Port1", "A2", &tt.row))

			var buf bytes.Buffer
			require.NoError(t, f.Write(&buf))

			rows, err := ReadRows(&buf)
			assert.Nil(t, rows)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Port1 row 2")
			assert.Contains(t, err.Error(), tt.column+": must be at least 1")
		})
	}
}
