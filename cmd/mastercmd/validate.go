package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajack/mastercmd"
)

func newValidateCmd() *cobra.Command {
	var (
		cfgFlags configFlags
		logs     logFlags
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration without writing a workbook",
		Args:  cobra.NoArgs,
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

			issues := mastercmd.Check(cfg)
			reportIssues(cmd, logger, issues)
			if mastercmd.HasErrors(issues) {
				return fmt.Errorf("configuration has errors")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d devices x %d blocks, %d rows\n",
				cfg.DeviceCount, cfg.BlockCount, cfg.DeviceCount*cfg.BlockCount*mastercmd.TemplateRows)
			return nil
		},
	}

	cfgFlags.register(cmd)
	logs.register(cmd)
	return cmd
}
