package mastercmd

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// borderThick is the excelize border style for a thick continuous line.
const borderThick = 5

// Band is the spreadsheet row range covering one block.
type Band struct {
	DeviceNo int
	BlockNo  int
	FirstRow int // 1-based, inclusive
	LastRow  int // 1-based, inclusive
}

// Bands lays out one band of RowsPerBlock rows per (device, block), in
// generation order, starting below the header row.
func (l Layout) Bands() []Band {
	if l.DeviceCount <= 0 || l.BlockCount <= 0 || l.RowsPerBlock <= 0 {
		return nil
	}
	bands := make([]Band, 0, l.DeviceCount*l.BlockCount)
	row := 2
	for d := 1; d <= l.DeviceCount; d++ {
		for b := 1; b <= l.BlockCount; b++ {
			bands = append(bands, Band{DeviceNo: d, BlockNo: b, FirstRow: row, LastRow: row + l.RowsPerBlock - 1})
			row += l.RowsPerBlock
		}
	}
	return bands
}

// edges selects which sides of a cell carry a thick border.
type edges struct {
	top, bottom, left, right bool
}

type styleKey struct {
	color int // palette index, -1 for no fill
	edges edges
}

// renderer writes rows into an excelize workbook.
type renderer struct {
	file   *excelize.File
	opts   *Options
	styles map[styleKey]int
}

// Render lays rows out on the primary sheet under a header row, adds an
// empty placeholder sheet with the same header, and bands each block with
// a palette fill and a thick outline. The caller owns the returned file.
func Render(rows []Row, layout Layout, opts ...Option) (*excelize.File, error) {
	if layout.RowsPerBlock <= 0 {
		return nil, &ValidationError{
			Field:   "rows_per_block",
			Message: "invalid rows_per_block",
			Reason:  fmt.Sprintf("rows per block must be positive, got %d", layout.RowsPerBlock),
		}
	}

	o := buildOptions(opts)
	if o.primarySheet == o.secondarySheet {
		return nil, &ValidationError{
			Field:   "sheet_names",
			Message: "invalid sheet names",
			Reason:  fmt.Sprintf("primary and secondary sheet are both %q", o.primarySheet),
			Hint:    "give the two sheets different names",
		}
	}
	r := &renderer{
		file:   excelize.NewFile(),
		opts:   o,
		styles: make(map[styleKey]int),
	}
	if err := r.render(rows, layout); err != nil {
		r.file.Close()
		return nil, err
	}
	return r.file, nil
}

func (r *renderer) render(rows []Row, layout Layout) error {
	primary, secondary := r.opts.primarySheet, r.opts.secondarySheet
	if err := r.file.SetSheetName("Sheet1", primary); err != nil {
		return fmt.Errorf("rename sheet %q: %w", primary, err)
	}
	if _, err := r.file.NewSheet(secondary); err != nil {
		return fmt.Errorf("create sheet %q: %w", secondary, err)
	}

	for _, sheet := range []string{primary, secondary} {
		if err := r.writeHeader(sheet); err != nil {
			return err
		}
	}

	for i, row := range rows {
		if err := r.writeRow(primary, i+2, row); err != nil {
			return err
		}
	}

	for _, band := range layout.Bands() {
		if err := r.styleBand(primary, band); err != nil {
			return fmt.Errorf("style device %d block %d: %w", band.DeviceNo, band.BlockNo, err)
		}
	}
	return nil
}

func (r *renderer) writeHeader(sheet string) error {
	cell, _ := excelize.CoordinatesToCellName(1, 1)
	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := r.file.SetSheetRow(sheet, cell, &header); err != nil {
		return fmt.Errorf("write header of %q: %w", sheet, err)
	}

	for i, w := range r.opts.columnWidths {
		if i >= len(Header) {
			break
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := r.file.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set width of %s!%s: %w", sheet, col, err)
		}
	}

	if !r.opts.boldHeader {
		return nil
	}
	styleID, err := r.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(Header), 1)
	return r.file.SetCellStyle(sheet, cell, last, styleID)
}

func (r *renderer) writeRow(sheet string, rowNum int, row Row) error {
	values := []any{row.DeviceNo, row.BlockNo, row.NodeNo, row.Parameter}
	if v := row.ConfigValue.cellValue(); v != nil {
		values = append(values, v)
	}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := r.file.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// styleBand fills a block's rectangle and draws its thick outline.
func (r *renderer) styleBand(sheet string, band Band) error {
	color := -1
	if n := len(r.opts.palette); n > 0 {
		color = (band.BlockNo - 1) % n
	}
	lastCol := len(Header)
	for row := band.FirstRow; row <= band.LastRow; row++ {
		for col := 1; col <= lastCol; col++ {
			key := styleKey{
				color: color,
				edges: edges{
					top:    row == band.FirstRow,
					bottom: row == band.LastRow,
					left:   col == 1,
					right:  col == lastCol,
				},
			}
			styleID, err := r.style(key)
			if err != nil {
				return err
			}
			cell, _ := excelize.CoordinatesToCellName(col, row)
			if err := r.file.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return fmt.Errorf("set style of %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

// style returns a cached style ID for the given fill and edge combination.
func (r *renderer) style(key styleKey) (int, error) {
	if id, ok := r.styles[key]; ok {
		return id, nil
	}
	s := &excelize.Style{}
	if key.color >= 0 {
		s.Fill = excelize.Fill{Type: "pattern", Color: []string{r.opts.palette[key.color]}, Pattern: 1}
	}
	sides := []struct {
		name string
		on   bool
	}{
		{"left", key.edges.left},
		{"top", key.edges.top},
		{"right", key.edges.right},
		{"bottom", key.edges.bottom},
	}
	for _, side := range sides {
		if side.on {
			s.Border = append(s.Border, excelize.Border{Type: side.name, Color: "000000", Style: borderThick})
		}
	}
	id, err := r.file.NewStyle(s)
	if err != nil {
		return 0, fmt.Errorf("create style: %w", err)
	}
	r.styles[key] = id
	return id, nil
}
