package mastercmd

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// MaxRows is the number of data rows a worksheet holds below the header.
const MaxRows = excelize.TotalRows - 1

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // Configuration cannot be generated
	SeverityWarning                 // Output may not be what was intended
)

// ValidationIssue represents a single problem found in a configuration.
type ValidationIssue struct {
	Severity Severity
	Field    string // YAML key of the offending setting
	Message  string
	Hint     string
}

// String formats the issue as "[ERROR] nodes: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.Field, v.Message)
}

func (v ValidationIssue) err() *ValidationError {
	return &ValidationError{
		Field:   v.Field,
		Message: fmt.Sprintf("invalid %s", v.Field),
		Reason:  v.Message,
		Hint:    v.Hint,
	}
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Check performs static checks on a configuration without generating it.
// Errors make Generate fail; warnings flag settings that are accepted but
// probably unintended.
func Check(cfg Configuration) []ValidationIssue {
	var issues []ValidationIssue
	issues = append(issues, checkCounts(cfg)...)
	issues = append(issues, checkGeometry(cfg)...)
	issues = append(issues, checkRuleKeys(cfg, "count", cfg.Rules.Count)...)
	issues = append(issues, checkRuleKeys(cfg, "dev_address", cfg.Rules.DevAddress)...)
	issues = append(issues, checkNodes(cfg)...)
	return issues
}

// checkCounts returns the error-severity issues.
func checkCounts(cfg Configuration) []ValidationIssue {
	var issues []ValidationIssue
	if cfg.DeviceCount <= 0 {
		issues = append(issues, ValidationIssue{
			Severity: SeverityError,
			Field:    "devices",
			Message:  fmt.Sprintf("device count must be positive, got %d", cfg.DeviceCount),
		})
	}
	if cfg.BlockCount <= 0 {
		issues = append(issues, ValidationIssue{
			Severity: SeverityError,
			Field:    "blocks",
			Message:  fmt.Sprintf("block count must be positive, got %d", cfg.BlockCount),
		})
	}
	if cfg.DeviceCount > 0 && cfg.BlockCount > 0 && cfg.BlockCount > MaxRows/TemplateRows/cfg.DeviceCount {
		issues = append(issues, ValidationIssue{
			Severity: SeverityError,
			Field:    "blocks",
			Message:  fmt.Sprintf("%d devices x %d blocks does not fit in one worksheet", cfg.DeviceCount, cfg.BlockCount),
			Hint:     fmt.Sprintf("devices x blocks x %d must be at most %d rows", TemplateRows, MaxRows),
		})
	} else if cfg.DeviceCount > 0 && cfg.BlockCount > 0 && cfg.RowsPerBlock > MaxRows/(cfg.DeviceCount*cfg.BlockCount) {
		issues = append(issues, ValidationIssue{
			Severity: SeverityError,
			Field:    "rows_per_block",
			Message:  fmt.Sprintf("%d rows per block does not fit in one worksheet", cfg.RowsPerBlock),
			Hint:     fmt.Sprintf("devices x blocks x rows_per_block must be at most %d rows", MaxRows),
		})
	}
	if cfg.RowsPerBlock <= 0 {
		issues = append(issues, ValidationIssue{
			Severity: SeverityError,
			Field:    "rows_per_block",
			Message:  fmt.Sprintf("rows per block must be positive, got %d", cfg.RowsPerBlock),
			Hint:     fmt.Sprintf("every block has %d parameter rows", TemplateRows),
		})
	}
	if len(cfg.NodeSequence) != cfg.DeviceCount {
		issues = append(issues, ValidationIssue{
			Severity: SeverityError,
			Field:    "nodes",
			Message:  fmt.Sprintf("node sequence has %d entries but device count is %d", len(cfg.NodeSequence), cfg.DeviceCount),
			Hint:     "give exactly one node id per device, in device order",
		})
	}
	return issues
}

// checkGeometry warns when the render banding cannot line up with the blocks.
func checkGeometry(cfg Configuration) []ValidationIssue {
	if cfg.RowsPerBlock <= 0 || cfg.RowsPerBlock == TemplateRows {
		return nil
	}
	return []ValidationIssue{{
		Severity: SeverityWarning,
		Field:    "rows_per_block",
		Message: fmt.Sprintf("rows per block is %d but each block has %d parameter rows; block colors and borders will not line up",
			cfg.RowsPerBlock, TemplateRows),
		Hint: fmt.Sprintf("set rows_per_block to %d", TemplateRows),
	}}
}

// checkRuleKeys warns about rule entries that can never match a block.
func checkRuleKeys(cfg Configuration, field string, m map[int]int) []ValidationIssue {
	var issues []ValidationIssue
	for _, b := range sortedKeys(m) {
		if b < 1 || (cfg.BlockCount > 0 && b > cfg.BlockCount) {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Field:    field,
				Message:  fmt.Sprintf("block %d is outside 1..%d and is ignored", b, cfg.BlockCount),
			})
			continue
		}
		if m[b] < 0 {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Field:    field,
				Message:  fmt.Sprintf("block %d has negative value %d", b, m[b]),
			})
		}
	}
	return issues
}

// checkNodes warns about devices sharing a node id.
func checkNodes(cfg Configuration) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[int]int, len(cfg.NodeSequence))
	for i, node := range cfg.NodeSequence {
		if first, ok := seen[node]; ok {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Field:    "nodes",
				Message:  fmt.Sprintf("device %d reuses node %d of device %d", i+1, node, first),
			})
			continue
		}
		seen[node] = i + 1
	}
	return issues
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
