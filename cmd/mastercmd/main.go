package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mastercmd",
		Short: "Generate MasterCmd configuration workbooks",
		Long: `mastercmd expands device, block and node settings into a MasterCmd
table (Enable, IntAddress, PollInt, Count, Swap, Node, Func, DevAddress per
block) and writes it as a banded xlsx workbook.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newFormCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
