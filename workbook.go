package mastercmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Build validates cfg, generates its rows and renders them.
// The caller owns the returned file.
func Build(cfg Configuration, opts ...Option) (*excelize.File, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rows, err := Generate(cfg)
	if err != nil {
		return nil, err
	}
	return Render(rows, cfg.Layout(), opts...)
}

// Write builds the workbook for cfg and writes it to w.
func Write(cfg Configuration, w io.Writer, opts ...Option) error {
	f, err := Build(cfg, opts...)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Bytes builds the workbook for cfg and returns it as bytes.
func Bytes(cfg Configuration, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(cfg, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile builds the workbook for cfg and saves it to path.
// The file is only created once the workbook has been built, so an
// invalid configuration leaves an existing file untouched. A failed
// write leaves no file behind.
func WriteFile(cfg Configuration, path string, opts ...Option) error {
	f, err := Build(cfg, opts...)
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file %q: %w", path, err)
	}
	if err := f.Write(out); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close output file %q: %w", path, err)
	}
	return nil
}

// ReadRows reads the primary sheet of a generated workbook back into rows.
// The header row is skipped; trailing empty rows are ignored.
func ReadRows(r io.Reader, opts ...Option) ([]Row, error) {
	o := buildOptions(opts)
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	cells, err := f.GetRows(o.primarySheet)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", o.primarySheet, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", o.primarySheet)
	}

	var rows []Row
	for i, cols := range cells[1:] {
		rowNum := i + 2
		if isEmptyRow(cols) {
			continue
		}
		row, err := parseRow(cols)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", o.primarySheet, rowNum, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isEmptyRow(cols []string) bool {
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(cols []string) (Row, error) {
	get := func(i int) string {
		if i < len(cols) {
			return strings.TrimSpace(cols[i])
		}
		return ""
	}
	var (
		row Row
		err error
	)
	ints := []struct {
		name string
		dst  *int
	}{
		{Header[0], &row.DeviceNo},
		{Header[1], &row.BlockNo},
		{Header[2], &row.NodeNo},
	}
	for i, col := range ints {
		if *col.dst, err = strconv.Atoi(get(i)); err != nil {
			return Row{}, fmt.Errorf("%s: invalid integer %q", col.name, get(i))
		}
	}
	if row.DeviceNo < 1 {
		return Row{}, fmt.Errorf("%s: must be at least 1, got %d", Header[0], row.DeviceNo)
	}
	if row.BlockNo < 1 {
		return Row{}, fmt.Errorf("%s: must be at least 1, got %d", Header[1], row.BlockNo)
	}
	row.Parameter = get(3)
	if row.Index, row.Field, err = ParseParameterName(row.Parameter); err != nil {
		return Row{}, err
	}
	if row.ConfigValue, err = ParseValue(get(4)); err != nil {
		return Row{}, fmt.Errorf("%s: %w", Header[4], err)
	}
	return row, nil
}
