// Package mna assembles the modified nodal equations of a circuit for one
// time point.
//
// Unknowns 1..N-1 are the non-ground node voltages, in node ID order. They
// are followed by one branch current per voltage-type element (independent
// voltage sources and inductor companions), in component order.
package mna

import (
	"fmt"

	"github.com/edp1096/transpice/pkg/circuit"
	"github.com/edp1096/transpice/pkg/matrix"
)

// Excitation carries the values resolved for one time point, indexed by
// component index. Entries of components of other kinds are ignored.
type Excitation struct {
	Sources    []float64 // independent source values
	Companions []float64 // storage element contributions
}

// NewExcitation returns a zeroed excitation for n components.
func NewExcitation(n int) Excitation {
	return Excitation{Sources: make([]float64, n), Companions: make([]float64, n)}
}

type Assembler struct {
	nodes    int         // non-ground node count
	branches map[int]int // component index -> branch unknown
	size     int
}

func NewAssembler(ckt *circuit.Circuit) *Assembler {
	a := &Assembler{
		nodes:    ckt.Nodes().Unknowns(),
		branches: make(map[int]int),
	}

	next := a.nodes + 1
	for i, comp := range ckt.GetComponents() {
		if comp.IsVoltage() {
			a.branches[i] = next
			next++
		}
	}
	a.size = next - 1
	return a
}

// Size is the number of unknowns.
func (a *Assembler) Size() int {
	return a.size
}

// Nodes is the number of node-voltage unknowns.
func (a *Assembler) Nodes() int {
	return a.nodes
}

// Branch returns the branch unknown of a voltage-type component.
func (a *Assembler) Branch(comp int) (int, bool) {
	b, ok := a.branches[comp]
	return b, ok
}

// Labels names every unknown: V(node) for node rows, I(component) for
// branch rows. Index 0 is empty.
func (a *Assembler) Labels(ckt *circuit.Circuit) []string {
	labels := make([]string, a.size+1)
	names := ckt.Nodes().Names()
	for i := 1; i <= a.nodes; i++ {
		labels[i] = fmt.Sprintf("V(%s)", names[i])
	}
	for comp, b := range a.branches {
		labels[b] = fmt.Sprintf("I(%s)", ckt.Component(comp).Name)
	}
	return labels
}

// Assemble builds a fresh system for ckt under ex.
func (a *Assembler) Assemble(ckt *circuit.Circuit, ex Excitation) (*matrix.Dense, error) {
	sys := matrix.NewDense(a.size)
	if err := a.AssembleInto(sys, ckt, ex); err != nil {
		return nil, err
	}
	return sys, nil
}

// AssembleInto stamps every component of ckt into m. The caller clears m.
func (a *Assembler) AssembleInto(m matrix.DeviceMatrix, ckt *circuit.Circuit, ex Excitation) error {
	comps := ckt.GetComponents()
	if len(ex.Sources) != len(comps) || len(ex.Companions) != len(comps) {
		return fmt.Errorf("excitation sized (%d, %d) for %d components",
			len(ex.Sources), len(ex.Companions), len(comps))
	}

	for i, comp := range comps {
		n1, n2 := comp.Pos, comp.Neg

		switch comp.Kind {
		case circuit.KindResistor:
			stampConductance(m, n1, n2, 1.0/comp.Value)

		case circuit.KindSource:
			if comp.Source == circuit.VoltageSource {
				stampVoltage(m, n1, n2, a.branches[i], ex.Sources[i])
			} else {
				stampCurrent(m, n1, n2, ex.Sources[i])
			}

		case circuit.KindStorage:
			if b, ok := a.branches[i]; ok {
				stampVoltage(m, n1, n2, b, ex.Companions[i])
			} else {
				// capacitor current flows from pos through the element to neg
				stampCurrent(m, n1, n2, -ex.Companions[i])
			}

		default:
			return fmt.Errorf("stamping %s: unknown component kind %v", comp.Name, comp.Kind)
		}
	}
	return nil
}
