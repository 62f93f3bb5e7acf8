package analysis

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/edp1096/transpice/pkg/circuit"
	"github.com/edp1096/transpice/pkg/mna"
)

// Point is one solved time point. Voltages is indexed by node ID with
// Voltages[0] = 0; Currents follows Result.Branches.
type Point struct {
	Time     float64   `json:"time"`
	Voltages []float64 `json:"voltages"`
	Currents []float64 `json:"currents,omitempty"`
}

type Result struct {
	RunID    string       `json:"run_id"`
	Circuit  string       `json:"circuit"`
	Mode     string       `json:"mode"`
	Nodes    []string     `json:"nodes"`
	Branches []string     `json:"branches,omitempty"`
	Points   []Point      `json:"points"`
	resistor []resistance // for derived currents
}

type resistance struct {
	name     string
	pos, neg int
	ohms     float64
}

func newResult(ckt *circuit.Circuit, asm *mna.Assembler) *Result {
	r := &Result{
		RunID:   uuid.NewString(),
		Circuit: ckt.Name(),
		Mode:    ckt.Analysis.Mode.String(),
		Nodes:   ckt.Nodes().Names(),
	}

	r.Branches = make([]string, asm.Size()-asm.Nodes())
	for i, comp := range ckt.GetComponents() {
		if b, ok := asm.Branch(i); ok {
			r.Branches[b-asm.Nodes()-1] = comp.Name
		}
		if comp.Kind == circuit.KindResistor {
			r.resistor = append(r.resistor, resistance{comp.Name, comp.Pos, comp.Neg, comp.Value})
		}
	}
	return r
}

func (r *Result) store(t float64, x []float64, nodes int) {
	r.Points = append(r.Points, Point{
		Time:     t,
		Voltages: slices.Clone(x[:nodes+1]),
		Currents: slices.Clone(x[nodes+1:]),
	})
}

// Times lists the solved time points.
func (r *Result) Times() []float64 {
	times := make([]float64, len(r.Points))
	for i, p := range r.Points {
		times[i] = p.Time
	}
	return times
}

// Voltage returns the waveform of a node by name.
func (r *Result) Voltage(node string) ([]float64, bool) {
	id := slices.Index(r.Nodes, node)
	if id < 0 {
		return nil, false
	}
	v := make([]float64, len(r.Points))
	for i, p := range r.Points {
		v[i] = p.Voltages[id]
	}
	return v, true
}

// Table flattens the result into the TIME / V(node) / I(element) layout.
// Branch currents are reported as delivered out of the positive terminal
// into the external circuit, as SPICE prints them; resistor currents are
// derived as V/R.
func (r *Result) Table() map[string][]float64 {
	table := make(map[string][]float64)
	table["TIME"] = r.Times()

	for id := 1; id < len(r.Nodes); id++ {
		v, _ := r.Voltage(r.Nodes[id])
		table[fmt.Sprintf("V(%s)", r.Nodes[id])] = v
	}

	for b, name := range r.Branches {
		key := fmt.Sprintf("I(%s)", name)
		for _, p := range r.Points {
			table[key] = append(table[key], -p.Currents[b])
		}
	}

	for _, res := range r.resistor {
		key := fmt.Sprintf("I(%s)", res.name)
		for _, p := range r.Points {
			table[key] = append(table[key], (p.Voltages[res.pos]-p.Voltages[res.neg])/res.ohms)
		}
	}
	return table
}
