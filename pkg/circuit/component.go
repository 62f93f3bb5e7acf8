package circuit

import (
	"fmt"

	"github.com/edp1096/transpice/pkg/companion"
	"github.com/edp1096/transpice/pkg/waveform"
)

type Kind int

const (
	KindResistor Kind = iota
	KindSource
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindResistor:
		return "R"
	case KindSource:
		return "S"
	case KindStorage:
		return "D"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type SourceType int

const (
	VoltageSource SourceType = iota
	CurrentSource
)

// Component is one two-terminal circuit element. Pos and Neg are node IDs in
// the owning circuit's registry. Fields after Neg are read according to Kind.
type Component struct {
	Kind Kind
	Name string
	Seq  int // per-kind sequence id
	Pos  int
	Neg  int

	// Resistance in ohms for KindResistor; capacitance or inductance for
	// KindStorage.
	Value float64

	// KindSource
	Source   SourceType
	Waveform waveform.Kind
	Params   []float64

	// KindStorage
	Storage companion.Kind
}

func (c Component) String() string {
	switch c.Kind {
	case KindSource:
		return fmt.Sprintf("%s %d %d %s%v", c.Name, c.Pos, c.Neg, c.Waveform, c.Params)
	case KindStorage:
		return fmt.Sprintf("%s %d %d %s=%g", c.Name, c.Pos, c.Neg, c.Storage, c.Value)
	}
	return fmt.Sprintf("%s %d %d %g", c.Name, c.Pos, c.Neg, c.Value)
}

// IsVoltage reports whether the component imposes a branch voltage and so
// needs its own branch unknown in the nodal equations.
func (c Component) IsVoltage() bool {
	switch c.Kind {
	case KindSource:
		return c.Source == VoltageSource
	case KindStorage:
		return c.Storage == companion.Inductor
	}
	return false
}
