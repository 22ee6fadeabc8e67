package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/javajack/mastercmd"
)

func newDescribeCmd() *cobra.Command {
	var (
		cfgFlags configFlags
		logs     logFlags
		input    string
		showRows bool
		where    string
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the generated table as a block tree or row preview",
		Long: `Describe generates the configuration (or reads an existing workbook with
--input) and prints a tree of devices and blocks. With --rows it prints one
line per row, colored by block. --where keeps only rows matching an
expression over Device, Block, Node, Index, Field, Parameter, Value and Blank.`,
		Example: `  mastercmd describe --config plant.yaml
  mastercmd describe --config plant.yaml --rows --where 'Field == "IntAddress" && !Blank'
  mastercmd describe --input MasterCmd.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logs.logger(cmd)
			if err != nil {
				return err
			}
			defer logger.Close()

			var rows []mastercmd.Row
			if input != "" {
				logger.Verbose("reading %s", input)
				rows, err = readWorkbook(input)
			} else {
				var cfg mastercmd.Configuration
				if cfg, err = cfgFlags.resolve(cmd); err != nil {
					return err
				}
				rows, err = mastercmd.Generate(cfg)
			}
			if err != nil {
				return err
			}

			if rows, err = mastercmd.Filter(rows, where); err != nil {
				return err
			}
			logger.Debug("%d rows after filter", len(rows))

			if showRows {
				printRows(cmd.OutOrStdout(), rows)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), mastercmd.DescribeRows(rows))
			return nil
		},
	}

	cfgFlags.register(cmd)
	logs.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "Read rows from an existing workbook instead of generating")
	cmd.Flags().BoolVar(&showRows, "rows", false, "Print every row instead of the block tree")
	cmd.Flags().StringVar(&where, "where", "", "Row filter expression")
	return cmd
}

func readWorkbook(path string) ([]mastercmd.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()
	return mastercmd.ReadRows(f)
}

// printRows writes one aligned line per row, shading each block with its
// palette color when w is a color terminal.
func printRows(w io.Writer, rows []mastercmd.Row) {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true)
	fmt.Fprintln(w, header.Render(fmt.Sprintf("%-6s %-6s %-6s %-44s %s", "Device", "Block", "Node", "Parameter", "Value")))

	palette := mastercmd.DefaultPalette
	for _, row := range rows {
		line := fmt.Sprintf("%-6d %-6d %-6d %-44s %s", row.DeviceNo, row.BlockNo, row.NodeNo, row.Parameter, row.ConfigValue)
		style := r.NewStyle()
		if color := blockColor(palette, row.BlockNo); color != "" {
			style = style.Background(lipgloss.Color("#" + color)).Foreground(lipgloss.Color("0"))
		}
		fmt.Fprintln(w, style.Render(line))
	}
}

// blockColor returns the palette color of a block, or "" when the block
// number has none.
func blockColor(palette []string, block int) string {
	if len(palette) == 0 || block < 1 {
		return ""
	}
	return palette[(block-1)%len(palette)]
}
