// Package circuit holds the in-memory description of one analysis run:
// nodes, components and the analysis descriptor.
package circuit

import (
	"math"
	"slices"

	"github.com/edp1096/transpice/pkg/companion"
	"github.com/edp1096/transpice/pkg/simerr"
	"github.com/edp1096/transpice/pkg/waveform"
)

type Circuit struct {
	name       string
	nodes      *NodeRegistry
	components []Component
	names      map[string]int // component name -> index
	seq        map[Kind]int
	Analysis   Analysis
}

func New(name string) *Circuit {
	return &Circuit{
		name:     name,
		nodes:    NewNodeRegistry(),
		names:    make(map[string]int),
		seq:      make(map[Kind]int),
		Analysis: NewDC(),
	}
}

func (c *Circuit) Name() string {
	return c.name
}

func (c *Circuit) Nodes() *NodeRegistry {
	return c.nodes
}

// Node interns a node name and returns its ID.
func (c *Circuit) Node(name string) int {
	return c.nodes.Intern(name)
}

func (c *Circuit) GetComponents() []Component {
	return c.components
}

func (c *Circuit) Component(i int) Component {
	return c.components[i]
}

// Lookup finds a component index by name.
func (c *Circuit) Lookup(name string) (int, bool) {
	i, ok := c.names[name]
	return i, ok
}

// Add appends comp, assigning its per-kind sequence id, and returns its
// index. Node IDs must already exist in the registry.
func (c *Circuit) Add(comp Component) (int, error) {
	const op = "circuit.Add"

	if comp.Name == "" {
		return 0, simerr.Config(op, "component name is empty")
	}
	if _, dup := c.names[comp.Name]; dup {
		return 0, simerr.Config(op, "duplicate component name %q", comp.Name)
	}
	if !c.nodes.Valid(comp.Pos) || !c.nodes.Valid(comp.Neg) {
		return 0, simerr.WithComponent(
			simerr.Config(op, "node (%d, %d) not in circuit", comp.Pos, comp.Neg), comp.Name)
	}

	switch comp.Kind {
	case KindResistor:
		if comp.Value <= 0 || math.IsInf(comp.Value, 0) || math.IsNaN(comp.Value) {
			return 0, simerr.WithComponent(
				simerr.Config(op, "resistance %g must be positive and finite", comp.Value), comp.Name)
		}
	case KindSource:
		comp.Params = slices.Clone(comp.Params)
	case KindStorage:
	default:
		return 0, simerr.Config(op, "unknown component kind %d", int(comp.Kind))
	}

	c.seq[comp.Kind]++
	comp.Seq = c.seq[comp.Kind]

	idx := len(c.components)
	c.components = append(c.components, comp)
	c.names[comp.Name] = idx
	return idx, nil
}

func (c *Circuit) AddResistor(name, pos, neg string, ohms float64) (int, error) {
	return c.Add(Component{
		Kind:  KindResistor,
		Name:  name,
		Pos:   c.Node(pos),
		Neg:   c.Node(neg),
		Value: ohms,
	})
}

func (c *Circuit) AddVoltageSource(name, pos, neg string, kind waveform.Kind, params ...float64) (int, error) {
	return c.addSource(VoltageSource, name, pos, neg, kind, params)
}

func (c *Circuit) AddCurrentSource(name, pos, neg string, kind waveform.Kind, params ...float64) (int, error) {
	return c.addSource(CurrentSource, name, pos, neg, kind, params)
}

func (c *Circuit) addSource(src SourceType, name, pos, neg string, kind waveform.Kind, params []float64) (int, error) {
	return c.Add(Component{
		Kind:     KindSource,
		Name:     name,
		Pos:      c.Node(pos),
		Neg:      c.Node(neg),
		Source:   src,
		Waveform: kind,
		Params:   params,
	})
}

// AddStorage adds a capacitor or inductor. Reserved companion kinds are
// accepted here and rejected when the analysis resolves them.
func (c *Circuit) AddStorage(name, pos, neg string, kind companion.Kind, value float64) (int, error) {
	return c.Add(Component{
		Kind:    KindStorage,
		Name:    name,
		Pos:     c.Node(pos),
		Neg:     c.Node(neg),
		Value:   value,
		Storage: kind,
	})
}

func (c *Circuit) AddCapacitor(name, pos, neg string, farads float64) (int, error) {
	return c.AddStorage(name, pos, neg, companion.Capacitor, farads)
}

func (c *Circuit) AddInductor(name, pos, neg string, henries float64) (int, error) {
	return c.AddStorage(name, pos, neg, companion.Inductor, henries)
}

// Count returns the number of components of kind.
func (c *Circuit) Count(kind Kind) int {
	return c.seq[kind]
}

// GetNodeVoltage returns the last solved voltage of a node.
func (c *Circuit) GetNodeVoltage(nodeIdx int) float64 {
	if nodeIdx <= 0 || !c.nodes.Valid(nodeIdx) {
		return 0
	}
	return c.nodes.Node(nodeIdx).Voltage
}

// Validate checks the circuit invariants that Add cannot see on its own.
func (c *Circuit) Validate() error {
	const op = "circuit.Validate"

	if c.nodes.Unknowns() == 0 {
		return simerr.Config(op, "circuit %q has no non-ground node", c.name)
	}
	for _, comp := range c.components {
		if !c.nodes.Valid(comp.Pos) || !c.nodes.Valid(comp.Neg) {
			return simerr.WithComponent(simerr.Config(op, "dangling node reference"), comp.Name)
		}
	}
	return c.Analysis.Validate()
}
