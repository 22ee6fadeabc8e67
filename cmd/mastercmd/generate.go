package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajack/mastercmd"
	"github.com/javajack/mastercmd/internal/logging"
)

func newGenerateCmd() *cobra.Command {
	var (
		cfgFlags configFlags
		logs     logFlags
		output   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a MasterCmd workbook",
		Long: `Generate the MasterCmd rows for every device and block and write them
to an xlsx workbook with a Port1 data sheet and an empty Port2 sheet.`,
		Example: `  mastercmd generate --devices 2 --blocks 4 --nodes 5,6 --enable 1 --func 3 \
    --int-offset 10 --count 1:1,3:1,4:1 --dev-address 1:3,2:101,3:116,4:142
  mastercmd generate --config plant.yaml -o plant.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logs.logger(cmd)
			if err != nil {
				return err
			}
			defer logger.Close()

			cfg, err := cfgFlags.resolve(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cmd, logger, cfg, output)
		},
	}

	cfgFlags.register(cmd)
	logs.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "MasterCmd.xlsx", "Output workbook path")
	return cmd
}

// runGenerate checks cfg, reports warnings and writes the workbook.
func runGenerate(cmd *cobra.Command, logger *logging.Logger, cfg mastercmd.Configuration, output string) error {
	issues := mastercmd.Check(cfg)
	for _, issue := range issues {
		if issue.Severity == mastercmd.SeverityWarning {
			fmt.Fprintln(cmd.ErrOrStderr(), issue.String())
		}
	}

	logger.Debug("devices=%d blocks=%d rows_per_block=%d nodes=%v", cfg.DeviceCount, cfg.BlockCount, cfg.RowsPerBlock, cfg.NodeSequence)
	if err := mastercmd.WriteFile(cfg, output); err != nil {
		logger.Verbose("generate %s failed", output)
		return err
	}

	rows := cfg.DeviceCount * cfg.BlockCount * mastercmd.TemplateRows
	logger.Info("wrote %s", output)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rows)\n", output, rows)
	return nil
}
