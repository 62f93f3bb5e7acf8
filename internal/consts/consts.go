package consts

const (
	DefaultMaxSteps = 1_000_000 // Transient grid points allowed per run
	GroundName      = "0"       // Canonical name of the reference node
)

// GroundAliases are node names that always resolve to the reference node.
var GroundAliases = []string{"0", "gnd", "GND"}
