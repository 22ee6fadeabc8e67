package mastercmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TemplateRows is the number of parameter rows emitted for every block.
const TemplateRows = len(Fields)

// Rules drives the values written into configured blocks.
type Rules struct {
	Count            map[int]int `yaml:"count,omitempty"`       // block number → Count
	DevAddress       map[int]int `yaml:"dev_address,omitempty"` // block number → DevAddress
	Enable           Value       `yaml:"enable,omitempty"`
	Func             Value       `yaml:"func,omitempty"`
	IntAddressOffset int         `yaml:"int_address_offset"` // added when continuation crosses a device
	IntAddressStart  int         `yaml:"int_address_start"`  // IntAddress of the first configured block
}

// Configured reports whether block b has a Count or DevAddress entry.
func (r Rules) Configured(b int) bool {
	if _, ok := r.Count[b]; ok {
		return true
	}
	_, ok := r.DevAddress[b]
	return ok
}

func (r Rules) count(b int) Value {
	if n, ok := r.Count[b]; ok {
		return Int(n)
	}
	return Blank
}

func (r Rules) devAddress(b int) Value {
	if n, ok := r.DevAddress[b]; ok {
		return Int(n)
	}
	return Blank
}

// Configuration is the complete, immutable input of one generation run.
type Configuration struct {
	DeviceCount  int   `yaml:"devices"`
	BlockCount   int   `yaml:"blocks"`
	RowsPerBlock int   `yaml:"rows_per_block"`
	NodeSequence []int `yaml:"nodes,flow"` // NodeSequence[i] is the node of device i+1
	Rules        Rules `yaml:"rules"`
}

// Layout is the renderer geometry of a configuration.
type Layout struct {
	DeviceCount  int
	BlockCount   int
	RowsPerBlock int
}

// Layout returns the geometry used to band the rendered sheet.
func (c Configuration) Layout() Layout {
	return Layout{
		DeviceCount:  c.DeviceCount,
		BlockCount:   c.BlockCount,
		RowsPerBlock: c.RowsPerBlock,
	}
}

// Validate returns the first error-severity problem found by Check as a *ValidationError.
func (c Configuration) Validate() error {
	for _, issue := range Check(c) {
		if issue.Severity == SeverityError {
			return issue.err()
		}
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c Configuration) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// ParseConfig decodes a YAML configuration and applies defaults.
func ParseConfig(data []byte) (Configuration, error) {
	var cfg Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Configuration{}, fmt.Errorf("parse YAML: %w", err)
	}
	if cfg.RowsPerBlock == 0 {
		cfg.RowsPerBlock = TemplateRows
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("read config file: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Configuration{}, fmt.Errorf("load config %q: %w", path, err)
	}
	return cfg, nil
}
