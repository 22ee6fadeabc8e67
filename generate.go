package mastercmd

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one of the fixed per-block master command parameters.
type Field string

const (
	FieldEnable     Field = "Enable"
	FieldIntAddress Field = "IntAddress"
	FieldPollInt    Field = "PollInt"
	FieldCount      Field = "Count"
	FieldSwap       Field = "Swap"
	FieldNode       Field = "Node"
	FieldFunc       Field = "Func"
	FieldDevAddress Field = "DevAddress"
)

// Fields lists the parameters of one block in emission order.
var Fields = [...]Field{
	FieldEnable,
	FieldIntAddress,
	FieldPollInt,
	FieldCount,
	FieldSwap,
	FieldNode,
	FieldFunc,
	FieldDevAddress,
}

// ParameterPrefix prefixes every generated parameter name.
const ParameterPrefix = "MCM.CONFIG.Port1MasterCmd"

// ParameterName formats the parameter of field for the given global block index,
// e.g. "MCM.CONFIG.Port1MasterCmd[3].Count".
func ParameterName(index int, field Field) string {
	return fmt.Sprintf("%s[%d].%s", ParameterPrefix, index, field)
}

// ParseParameterName is the inverse of ParameterName.
func ParseParameterName(name string) (index int, field Field, err error) {
	rest, ok := strings.CutPrefix(name, ParameterPrefix+"[")
	if !ok {
		return 0, "", fmt.Errorf("parameter %q: missing %s prefix", name, ParameterPrefix)
	}
	idx, fieldName, ok := strings.Cut(rest, "].")
	if !ok {
		return 0, "", fmt.Errorf("parameter %q: malformed index", name)
	}
	index, err = strconv.Atoi(idx)
	if err != nil || index < 0 {
		return 0, "", fmt.Errorf("parameter %q: invalid index %q", name, idx)
	}
	for _, f := range Fields {
		if string(f) == fieldName {
			return index, f, nil
		}
	}
	return 0, "", fmt.Errorf("parameter %q: unknown field %q", name, fieldName)
}

// Row is one line of the master command table.
type Row struct {
	DeviceNo    int
	BlockNo     int
	NodeNo      int
	Parameter   string
	ConfigValue Value

	Index int   // global block index embedded in Parameter
	Field Field // parameter field embedded in Parameter
}

// continuation carries IntAddress state from one configured block to the next.
type continuation struct {
	address Value // IntAddress of the last configured block
	count   Value // Count of the last configured block
	device  int   // device of the last configured block, 0 before the first
}

// intAddress computes the IntAddress of the next configured block on device.
func (c continuation) intAddress(device int, rules Rules) int {
	prev, ok := c.address.Int()
	if !ok {
		return rules.IntAddressStart
	}
	addr := prev + c.count.Or(0)
	if c.device != 0 && c.device != device {
		addr += rules.IntAddressOffset
	}
	return addr
}

// blockInput identifies one (device, block) step of the generation fold.
type blockInput struct {
	device int
	block  int
	index  int
	node   int
}

// expandBlock emits the parameter rows of one block and returns the
// continuation state to use for the next block.
func expandBlock(state continuation, in blockInput, rules Rules) ([]Row, continuation) {
	configured := rules.Configured(in.block)

	var address Value
	if configured {
		address = Int(state.intAddress(in.device, rules))
	}

	rows := make([]Row, 0, TemplateRows)
	for _, field := range Fields {
		row := Row{
			DeviceNo:  in.device,
			BlockNo:   in.block,
			NodeNo:    in.node,
			Parameter: ParameterName(in.index, field),
			Index:     in.index,
			Field:     field,
		}
		if configured {
			row.ConfigValue = fieldValue(field, in, rules, address)
		}
		rows = append(rows, row)
	}

	if !configured {
		return rows, state
	}
	return rows, continuation{
		address: emittedAddress(rows),
		count:   rules.count(in.block),
		device:  in.device,
	}
}

// fieldValue resolves the value of a field in a configured block.
func fieldValue(field Field, in blockInput, rules Rules, address Value) Value {
	switch field {
	case FieldEnable:
		return rules.Enable
	case FieldIntAddress:
		return address
	case FieldCount:
		return rules.count(in.block)
	case FieldNode:
		return Int(in.node)
	case FieldFunc:
		return rules.Func
	case FieldDevAddress:
		return rules.devAddress(in.block)
	}
	// PollInt and Swap are not driven by any rule.
	return Blank
}

// emittedAddress reads the IntAddress value back from a block's rows.
func emittedAddress(rows []Row) Value {
	for _, r := range rows {
		if r.Field == FieldIntAddress {
			return r.ConfigValue
		}
	}
	return Blank
}

// Generate expands cfg into the master command table: device-major,
// block-minor, with the eight parameter rows of each block innermost.
// It returns a *ValidationError and no rows when the node sequence does
// not have one entry per device. Missing rule entries yield blank values.
func Generate(cfg Configuration) ([]Row, error) {
	if err := checkGenerate(cfg); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, cfg.DeviceCount*cfg.BlockCount*TemplateRows)
	var state continuation
	index := 0
	for d := 1; d <= cfg.DeviceCount; d++ {
		node := cfg.NodeSequence[d-1]
		for b := 1; b <= cfg.BlockCount; b++ {
			var block []Row
			block, state = expandBlock(state, blockInput{device: d, block: b, index: index, node: node}, cfg.Rules)
			rows = append(rows, block...)
			index++
		}
	}
	return rows, nil
}

// checkGenerate enforces the preconditions of Generate.
func checkGenerate(cfg Configuration) error {
	for _, issue := range checkCounts(cfg) {
		if issue.Field == "rows_per_block" {
			continue // renderer geometry only
		}
		return issue.err()
	}
	return nil
}
