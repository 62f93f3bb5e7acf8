package circuit

import (
	"golang.org/x/text/unicode/norm"

	"github.com/edp1096/transpice/internal/consts"
)

// Node is an electrical connection point. ID 0 is the reference node.
type Node struct {
	ID      int
	Name    string
	Voltage float64
}

// NodeRegistry owns the nodes of one circuit. IDs are dense indices into the
// registry, assigned in order of first appearance.
type NodeRegistry struct {
	nodes []Node
	index map[string]int
}

func NewNodeRegistry() *NodeRegistry {
	r := &NodeRegistry{
		nodes: []Node{{ID: 0, Name: consts.GroundName}},
		index: make(map[string]int),
	}
	for _, alias := range consts.GroundAliases {
		r.index[alias] = 0
	}
	return r
}

// Intern returns the ID of name, creating the node on first use. Names are
// compared in Unicode NFC form.
func (r *NodeRegistry) Intern(name string) int {
	name = norm.NFC.String(name)
	if id, ok := r.index[name]; ok {
		return id
	}
	id := len(r.nodes)
	r.nodes = append(r.nodes, Node{ID: id, Name: name})
	r.index[name] = id
	return id
}

func (r *NodeRegistry) Lookup(name string) (int, bool) {
	id, ok := r.index[norm.NFC.String(name)]
	return id, ok
}

func (r *NodeRegistry) Node(id int) Node {
	return r.nodes[id]
}

// Valid reports whether id names a node of this registry.
func (r *NodeRegistry) Valid(id int) bool {
	return id >= 0 && id < len(r.nodes)
}

// Len counts all nodes including ground.
func (r *NodeRegistry) Len() int {
	return len(r.nodes)
}

// Unknowns is the number of non-reference nodes.
func (r *NodeRegistry) Unknowns() int {
	return len(r.nodes) - 1
}

// Names lists node names by ID.
func (r *NodeRegistry) Names() []string {
	names := make([]string, len(r.nodes))
	for i, n := range r.nodes {
		names[i] = n.Name
	}
	return names
}

// SetVoltages stores a solved vector indexed by node ID. Ground stays at 0.
func (r *NodeRegistry) SetVoltages(v []float64) {
	for i := 1; i < len(r.nodes) && i < len(v); i++ {
		r.nodes[i].Voltage = v[i]
	}
	r.nodes[0].Voltage = 0
}

// Voltages returns the current node voltages indexed by ID.
func (r *NodeRegistry) Voltages() []float64 {
	v := make([]float64, len(r.nodes))
	for i, n := range r.nodes {
		v[i] = n.Voltage
	}
	return v
}
