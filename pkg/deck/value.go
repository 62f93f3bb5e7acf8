package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// unitMap is keyed by lower-case suffix. SPICE suffixes ignore case, so M
// is milli and mega is spelled meg.
var unitMap = map[string]float64{
	"t":   1e12,  // tera
	"g":   1e9,   // giga
	"meg": 1e6,   // mega
	"k":   1e3,   // kilo
	"m":   1e-3,  // milli
	"u":   1e-6,  // micro
	"n":   1e-9,  // nano
	"p":   1e-12, // pico
	"f":   1e-15, // femto
}

var valueRe = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)((?i:meg|[tgkmunpf]))?(?i:s)?$`)

// ParseValue reads a number with an optional SPICE scale suffix, e.g. 4.7k,
// 10u, 2meg or 1ns.
func ParseValue(val string) (float64, error) {
	matches := valueRe.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}
	if multiplier, ok := unitMap[strings.ToLower(matches[2])]; ok {
		num *= multiplier
	}
	return num, nil
}

// Value is a float that also accepts suffixed strings in YAML.
type Value float64

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var f float64
	if err := node.Decode(&f); err == nil {
		*v = Value(f)
		return nil
	}

	f, err := ParseValue(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = Value(f)
	return nil
}

func floats(vs []Value) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	return out
}
