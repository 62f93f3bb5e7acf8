package analysis

import (
	"github.com/edp1096/transpice/pkg/circuit"
	"github.com/edp1096/transpice/pkg/simerr"
)

// New returns the analysis matching mode.
func New(mode circuit.Mode, opts Options) Analysis {
	if mode == circuit.Transient {
		return NewTransient(opts)
	}
	return NewOP(opts)
}

// Run sets up and executes the analysis ckt.Analysis describes.
func Run(ckt *circuit.Circuit, opts Options) (*Result, error) {
	a := New(ckt.Analysis.Mode, opts)
	if err := a.Setup(ckt); err != nil {
		return nil, err
	}
	if err := a.Execute(); err != nil {
		return nil, err
	}
	return a.Result(), nil
}

func errNotSetUp(name string) error {
	return simerr.Config("analysis."+name, "Execute called before a successful Setup")
}
