package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/javajack/mastercmd"
)

// formAnswers holds the raw text entered in the form.
type formAnswers struct {
	devices      string
	blocks       string
	rowsPerBlock string
	nodes        string
	enable       string
	function     string
	intOffset    string
	intStart     string
	count        string
	devAddress   string
	output       string
}

func defaultFormAnswers() formAnswers {
	return formAnswers{
		devices:      "1",
		blocks:       "6",
		rowsPerBlock: strconv.Itoa(mastercmd.TemplateRows),
		enable:       "1",
		function:     "3",
		intOffset:    "0",
		intStart:     "0",
		output:       "MasterCmd.xlsx",
	}
}

// answersFromConfig pre-fills the form from an existing configuration.
func answersFromConfig(cfg mastercmd.Configuration, output string) formAnswers {
	return formAnswers{
		devices:      strconv.Itoa(cfg.DeviceCount),
		blocks:       strconv.Itoa(cfg.BlockCount),
		rowsPerBlock: strconv.Itoa(cfg.RowsPerBlock),
		nodes:        mastercmd.FormatNodeSequence(cfg.NodeSequence),
		enable:       cfg.Rules.Enable.String(),
		function:     cfg.Rules.Func.String(),
		intOffset:    strconv.Itoa(cfg.Rules.IntAddressOffset),
		intStart:     strconv.Itoa(cfg.Rules.IntAddressStart),
		count:        mastercmd.FormatBlockMap(cfg.Rules.Count),
		devAddress:   mastercmd.FormatBlockMap(cfg.Rules.DevAddress),
		output:       output,
	}
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive integer")
	}
	return nil
}

func anyInt(s string) error {
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("enter an integer")
	}
	return nil
}

func optionalValue(s string) error {
	_, err := mastercmd.ParseValue(s)
	return err
}

func nodeList(s string) error {
	_, err := mastercmd.ParseNodeSequence(s)
	return err
}

func blockMap(s string) error {
	_, err := mastercmd.ParseBlockMap(s)
	return err
}

func buildConfigForm(a *formAnswers) *huh.Form {
	layoutGroup := huh.NewGroup(
		huh.NewInput().
			Title("Devices").
			Description("Number of devices on the port.").
			Value(&a.devices).
			Validate(positiveInt),
		huh.NewInput().
			Title("Blocks per device").
			Description("Master command blocks generated for each device.").
			Value(&a.blocks).
			Validate(positiveInt),
		huh.NewInput().
			Title("Rows per block").
			Description(fmt.Sprintf("Spreadsheet rows banded per block (%d matches the parameter template).", mastercmd.TemplateRows)).
			Value(&a.rowsPerBlock).
			Validate(positiveInt),
		huh.NewInput().
			Title("Node sequence").
			Description("One node id per device, e.g. 5,6,7 or 1-4.").
			Value(&a.nodes).
			Validate(nodeList),
	)

	rulesGroup := huh.NewGroup(
		huh.NewInput().
			Title("Enable").
			Description("Enable value for configured blocks (blank to leave empty).").
			Value(&a.enable).
			Validate(optionalValue),
		huh.NewInput().
			Title("Func").
			Description("Function code for configured blocks (blank to leave empty).").
			Value(&a.function).
			Validate(optionalValue),
		huh.NewInput().
			Title("IntAddress start").
			Value(&a.intStart).
			Validate(anyInt),
		huh.NewInput().
			Title("IntAddress offset").
			Description("Added when the address continues on the next device.").
			Value(&a.intOffset).
			Validate(anyInt),
		huh.NewInput().
			Title("Count per block").
			Description("block:count pairs, e.g. 1:1,3:1,4:1").
			Value(&a.count).
			Validate(blockMap),
		huh.NewInput().
			Title("DevAddress per block").
			Description("block:address pairs, e.g. 1:3,2:101").
			Value(&a.devAddress).
			Validate(blockMap),
	)

	outputGroup := huh.NewGroup(
		huh.NewInput().
			Title("Output file").
			Value(&a.output).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("enter a file name")
				}
				return nil
			}),
	)

	return huh.NewForm(layoutGroup, rulesGroup, outputGroup)
}

// configuration converts the answers into a Configuration.
func (a formAnswers) configuration() (mastercmd.Configuration, error) {
	var (
		cfg mastercmd.Configuration
		err error
	)
	ints := []struct {
		name string
		src  string
		dst  *int
	}{
		{"devices", a.devices, &cfg.DeviceCount},
		{"blocks", a.blocks, &cfg.BlockCount},
		{"rows per block", a.rowsPerBlock, &cfg.RowsPerBlock},
		{"IntAddress offset", a.intOffset, &cfg.Rules.IntAddressOffset},
		{"IntAddress start", a.intStart, &cfg.Rules.IntAddressStart},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.Atoi(f.src); err != nil {
			return mastercmd.Configuration{}, fmt.Errorf("%s: invalid integer %q", f.name, f.src)
		}
	}
	if cfg.NodeSequence, err = mastercmd.ParseNodeSequence(a.nodes); err != nil {
		return mastercmd.Configuration{}, err
	}
	if cfg.Rules.Enable, err = mastercmd.ParseValue(a.enable); err != nil {
		return mastercmd.Configuration{}, fmt.Errorf("enable: %w", err)
	}
	if cfg.Rules.Func, err = mastercmd.ParseValue(a.function); err != nil {
		return mastercmd.Configuration{}, fmt.Errorf("func: %w", err)
	}
	if cfg.Rules.Count, err = mastercmd.ParseBlockMap(a.count); err != nil {
		return mastercmd.Configuration{}, fmt.Errorf("count: %w", err)
	}
	if cfg.Rules.DevAddress, err = mastercmd.ParseBlockMap(a.devAddress); err != nil {
		return mastercmd.Configuration{}, fmt.Errorf("dev address: %w", err)
	}
	return cfg, nil
}

func newFormCmd() *cobra.Command {
	var (
		logs       logFlags
		configPath string
		saveConfig string
	)

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Enter the configuration interactively and write the workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logs.logger(cmd)
			if err != nil {
				return err
			}
			defer logger.Close()

			answers := defaultFormAnswers()
			if configPath != "" {
				cfg, err := mastercmd.LoadConfig(configPath)
				if err != nil {
					return err
				}
				answers = answersFromConfig(cfg, answers.output)
			}

			if err := buildConfigForm(&answers).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
					return nil
				}
				return fmt.Errorf("form: %w", err)
			}

			cfg, err := answers.configuration()
			if err != nil {
				return err
			}
			if saveConfig != "" {
				if err := writeConfig(cfg, saveConfig); err != nil {
					return err
				}
				logger.Info("saved configuration to %s", saveConfig)
			}
			return runGenerate(cmd, logger, cfg, answers.output)
		},
	}

	logs.register(cmd)
	cmd.Flags().StringVar(&configPath, "config", "", "Pre-fill the form from a YAML configuration")
	cmd.Flags().StringVar(&saveConfig, "save-config", "", "Save the entered configuration as YAML")
	return cmd
}

func writeConfig(cfg mastercmd.Configuration, path string) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	return nil
}
