package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajack/mastercmd"
	"github.com/javajack/mastercmd/internal/logging"
)

// configFlags binds the generation inputs to command-line flags.
// With --config, only flags that were set override the file.
type configFlags struct {
	configPath   string
	devices      int
	blocks       int
	rowsPerBlock int
	nodes        string
	enable       string
	function     string
	intOffset    int
	intStart     int
	count        string
	devAddress   string
}

func (f *configFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fl.IntVar(&f.devices, "devices", 1, "Number of devices")
	fl.IntVar(&f.blocks, "blocks", 1, "Blocks per device")
	fl.IntVar(&f.rowsPerBlock, "rows-per-block", mastercmd.TemplateRows, "Spreadsheet rows banded per block")
	fl.StringVar(&f.nodes, "nodes", "", "Node id per device, comma-separated (ranges like 1-4 allowed)")
	fl.StringVar(&f.enable, "enable", "", "Enable value for configured blocks")
	fl.StringVar(&f.function, "func", "", "Func value for configured blocks")
	fl.IntVar(&f.intOffset, "int-offset", 0, "IntAddress offset added when crossing a device")
	fl.IntVar(&f.intStart, "int-start", 0, "IntAddress of the first configured block")
	fl.StringVar(&f.count, "count", "", "Per-block Count, e.g. \"1:1,3:1\"")
	fl.StringVar(&f.devAddress, "dev-address", "", "Per-block DevAddress, e.g. \"1:3,2:101\"")
}

// resolve builds the configuration from the config file and flags.
func (f *configFlags) resolve(cmd *cobra.Command) (mastercmd.Configuration, error) {
	cfg := mastercmd.Configuration{RowsPerBlock: mastercmd.TemplateRows}
	fromFile := f.configPath != ""
	if fromFile {
		var err error
		if cfg, err = mastercmd.LoadConfig(f.configPath); err != nil {
			return mastercmd.Configuration{}, err
		}
	}
	use := func(name string) bool {
		return !fromFile || cmd.Flags().Changed(name)
	}

	if use("devices") {
		cfg.DeviceCount = f.devices
	}
	if use("blocks") {
		cfg.BlockCount = f.blocks
	}
	if use("rows-per-block") {
		cfg.RowsPerBlock = f.rowsPerBlock
	}
	if use("int-offset") {
		cfg.Rules.IntAddressOffset = f.intOffset
	}
	if use("int-start") {
		cfg.Rules.IntAddressStart = f.intStart
	}
	if use("nodes") {
		nodes, err := mastercmd.ParseNodeSequence(f.nodes)
		if err != nil {
			return mastercmd.Configuration{}, fmt.Errorf("--nodes: %w", err)
		}
		cfg.NodeSequence = nodes
	}
	if use("enable") {
		v, err := mastercmd.ParseValue(f.enable)
		if err != nil {
			return mastercmd.Configuration{}, fmt.Errorf("--enable: %w", err)
		}
		cfg.Rules.Enable = v
	}
	if use("func") {
		v, err := mastercmd.ParseValue(f.function)
		if err != nil {
			return mastercmd.Configuration{}, fmt.Errorf("--func: %w", err)
		}
		cfg.Rules.Func = v
	}
	if use("count") {
		m, err := mastercmd.ParseBlockMap(f.count)
		if err != nil {
			return mastercmd.Configuration{}, fmt.Errorf("--count: %w", err)
		}
		cfg.Rules.Count = m
	}
	if use("dev-address") {
		m, err := mastercmd.ParseBlockMap(f.devAddress)
		if err != nil {
			return mastercmd.Configuration{}, fmt.Errorf("--dev-address: %w", err)
		}
		cfg.Rules.DevAddress = m
	}
	return cfg, nil
}

// logFlags binds the logger settings shared by all commands.
type logFlags struct {
	quiet   bool
	verbose bool
	debug   bool
	logFile string
}

func (f *logFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "Only log errors")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose logging")
	fl.BoolVar(&f.debug, "debug", false, "Debug logging")
	fl.StringVar(&f.logFile, "log-file", "", "Also write the log to this file")
}

func (f *logFlags) logger(cmd *cobra.Command) (*logging.Logger, error) {
	return logging.NewLoggerTo(logging.LevelFromFlags(f.quiet, f.verbose, f.debug), f.logFile, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// reportIssues logs error issues through the logger and prints warnings
// to stderr.
func reportIssues(cmd *cobra.Command, logger *logging.Logger, issues []mastercmd.ValidationIssue) {
	for _, issue := range issues {
		if issue.Severity == mastercmd.SeverityError {
			logger.Error("%s: %s", issue.Field, issue.Message)
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), issue.String())
		}
		if issue.Hint != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "  Hint: %s\n", issue.Hint)
		}
	}
	if len(issues) > 0 {
		logger.Verbose("%d configuration issue(s)", len(issues))
	}
}
