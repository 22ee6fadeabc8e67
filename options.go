package mastercmd

// DefaultPalette is the fill cycle applied to block bands, indexed by (block-1) mod len.
var DefaultPalette = []string{
	"FFF2CC", // yellow
	"DDEBF7", // blue
	"E2EFDA", // green
	"FCE4D6", // orange
	"EDE2F6", // purple
	"EDEDED", // grey
}

// Header is the column header row of both port sheets.
var Header = []string{"Device No.", "Block No.", "Node No.", "Parameter", "ConfigValue"}

// Options holds configuration for rendering and reading workbooks.
type Options struct {
	primarySheet   string
	secondarySheet string
	palette        []string
	boldHeader     bool
	columnWidths   []float64
}

func defaultOptions() *Options {
	return &Options{
		primarySheet:   "Port1",
		secondarySheet: "Port2",
		palette:        DefaultPalette,
		boldHeader:     true,
		columnWidths:   []float64{12, 12, 12, 40, 14},
	}
}

func buildOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures rendering.
type Option func(*Options)

// WithPalette sets the block fill colors as RGB hex strings ("FFF2CC").
// An empty palette leaves blocks unfilled.
func WithPalette(colors ...string) Option {
	return func(o *Options) { o.palette = colors }
}

// WithSheetNames sets the names of the data sheet and the empty placeholder sheet (default: "Port1", "Port2").
func WithSheetNames(primary, secondary string) Option {
	return func(o *Options) {
		o.primarySheet = primary
		o.secondarySheet = secondary
	}
}

// WithHeaderStyle controls whether the header row is bold (default: true).
func WithHeaderStyle(bold bool) Option {
	return func(o *Options) { o.boldHeader = bold }
}

// WithColumnWidths sets the widths of the five table columns, in order.
// Missing trailing widths keep the column default.
func WithColumnWidths(widths ...float64) Option {
	return func(o *Options) { o.columnWidths = widths }
}
