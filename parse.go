package mastercmd

import (
	"fmt"
	"strconv"
	"strings"
)

// splitList splits a comma- or newline-separated list and trims each entry.
func splitList(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", ",")
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// maxNodeRange is the longest range a node sequence entry may expand to:
// one node per device of the largest table a worksheet can hold.
const maxNodeRange = MaxRows / TemplateRows

// ParseNodeSequence parses node ids like "5, 6, 7" or "1-4,9".
// A range expands inclusively in either direction.
func ParseNodeSequence(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var nodes []int
	for i, part := range splitList(s) {
		if part == "" {
			return nil, fmt.Errorf("node sequence entry %d is empty", i+1)
		}
		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange || strings.TrimSpace(lo) == "" {
			// a leading "-" is a negative number, not a range
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("node sequence entry %d: invalid node %q", i+1, part)
			}
			nodes = append(nodes, n)
			continue
		}
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("node sequence entry %d: invalid range start %q", i+1, lo)
		}
		to, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("node sequence entry %d: invalid range end %q", i+1, hi)
		}
		step, span := 1, uint64(to)-uint64(from)
		if to < from {
			step, span = -1, uint64(from)-uint64(to)
		}
		if span >= uint64(maxNodeRange) {
			return nil, fmt.Errorf("node sequence entry %d: range %q expands to more than %d nodes", i+1, part, maxNodeRange)
		}
		for k := 0; k <= int(span); k++ {
			nodes = append(nodes, from+k*step)
		}
	}
	return nodes, nil
}

// ParseBlockMap parses sparse per-block values like "1:1, 3:1" into
// block number → value. Values may be hex ("2:0x65").
func ParseBlockMap(s string) (map[int]int, error) {
	m := make(map[int]int)
	if strings.TrimSpace(s) == "" {
		return m, nil
	}
	for _, part := range splitList(s) {
		if part == "" {
			continue
		}
		key, val, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("block entry %q: expected block:value", part)
		}
		block, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || block < 1 {
			return nil, fmt.Errorf("block entry %q: invalid block number %q", part, strings.TrimSpace(key))
		}
		if _, dup := m[block]; dup {
			return nil, fmt.Errorf("block entry %q: block %d given twice", part, block)
		}
		v, err := ParseValue(val)
		if err != nil {
			return nil, fmt.Errorf("block entry %q: %w", part, err)
		}
		n, ok := v.Int()
		if !ok {
			return nil, fmt.Errorf("block entry %q: missing value", part)
		}
		m[block] = n
	}
	return m, nil
}

// FormatBlockMap is the inverse of ParseBlockMap, ordered by block number.
func FormatBlockMap(m map[int]int) string {
	parts := make([]string, 0, len(m))
	for _, b := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%d:%d", b, m[b]))
	}
	return strings.Join(parts, ",")
}

// FormatNodeSequence joins node ids with commas.
func FormatNodeSequence(nodes []int) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
