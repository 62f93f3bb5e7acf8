// Package companion models energy-storage elements as history-dependent
// sources.
//
// A Model does not integrate a differential equation. Given the two most
// recent solved node-voltage vectors it predicts the element's contribution
// for the next time point: a branch voltage for inductors, a branch current
// for capacitors. Models are stateless values; the caller owns the history.
package companion

import (
	"fmt"
	"math"
	"strings"

	"github.com/edp1096/transpice/pkg/simerr"
	"github.com/edp1096/transpice/pkg/util"
)

type Kind int

const (
	Inductor Kind = iota
	Capacitor
	VoltageTrigger
	CurrentTrigger
	VoltageDependent
	CurrentDependent
)

var kindNames = [...]string{
	Inductor:         "inductor",
	Capacitor:        "capacitor",
	VoltageTrigger:   "vtrigger",
	CurrentTrigger:   "itrigger",
	VoltageDependent: "vdependent",
	CurrentDependent: "idependent",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts a kind name or its SPICE element letter (L, C).
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "l":
		return Inductor, nil
	case "c":
		return Capacitor, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, simerr.Config("companion.ParseKind", "unknown storage element %q", s)
}

// Output says how a contribution enters the nodal equations.
type Output int

const (
	Voltage Output = iota // imposed across pos/neg through a branch unknown
	Current               // injected from pos to neg through the element
)

// Sample is one solved time point. Voltages is indexed by node ID and
// Voltages[0] is ground.
type Sample struct {
	Time     float64
	Voltages []float64
}

// Model is a resolved storage element between nodes Pos and Neg.
type Model struct {
	Kind  Kind
	Value float64
	Pos   int
	Neg   int
}

// Resolve builds a model from [value, posNodeIndex, negNodeIndex].
func Resolve(kind Kind, params []float64) (Model, error) {
	switch kind {
	case Inductor, Capacitor:
	case VoltageTrigger, CurrentTrigger, VoltageDependent, CurrentDependent:
		return Model{}, simerr.Unimplemented("companion.Resolve", kind.String())
	default:
		return Model{}, simerr.Config("companion.Resolve", "unknown storage kind %d", int(kind))
	}

	if len(params) != 3 {
		return Model{}, simerr.Config("companion.Resolve",
			"%s needs [value pos neg], got %d parameters", kind, len(params))
	}

	m := Model{Kind: kind, Value: params[0]}
	var err error
	if m.Pos, err = nodeIndex(params[1]); err != nil {
		return Model{}, err
	}
	if m.Neg, err = nodeIndex(params[2]); err != nil {
		return Model{}, err
	}
	if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
		return Model{}, simerr.Config("companion.Resolve", "%s value %g is not finite", kind, m.Value)
	}

	return m, nil
}

func nodeIndex(f float64) (int, error) {
	if f < 0 || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, simerr.Config("companion.Resolve", "invalid node index %g", f)
	}
	return int(f), nil
}

// Output reports whether the contribution is a voltage or a current.
func (m Model) Output() Output {
	if m.Kind == Capacitor {
		return Current
	}
	return Voltage
}

// across is the pos-neg voltage difference of a sample.
func (m Model) across(s Sample) float64 {
	return at(s.Voltages, m.Pos) - at(s.Voltages, m.Neg)
}

func at(v []float64, i int) float64 {
	if i <= 0 || i >= len(v) {
		return 0
	}
	return v[i]
}

// Contribution predicts the element's value at the next time point from the
// most recent sample prev and the one before it, prevPrev.
func (m Model) Contribution(prev, prevPrev Sample) float64 {
	v1, v2 := m.across(prev), m.across(prevPrev)

	switch m.Kind {
	case Inductor:
		// Linear extrapolation of the terminal voltage.
		// TODO: the inductance is unused; a flux-based model needs the branch
		// current in Sample as well.
		return 2*v1 - v2
	case Capacitor:
		return m.Value * util.BackwardDifference(prev.Time-prevPrev.Time, v1, v2)
	}
	return 0
}
