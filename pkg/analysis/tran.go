package analysis

import (
	"github.com/edp1096/transpice/pkg/circuit"
	"github.com/edp1096/transpice/pkg/simerr"
)

// Transient solves the circuit at every point of its time grid in order.
type Transient struct {
	BaseAnalysis
	params circuit.Analysis
}

func NewTransient(opts Options) *Transient {
	return &Transient{
		BaseAnalysis: *NewBaseAnalysis("tran", opts),
	}
}

func (tr *Transient) Setup(ckt *circuit.Circuit) error {
	if ckt.Analysis.Mode != circuit.Transient {
		tr.state = Failed
		return simerr.Config("analysis.Transient", "circuit %q is not set up for transient analysis", ckt.Name())
	}
	tr.params = ckt.Analysis

	if points := tr.params.Points(); points > tr.opts.MaxSteps {
		tr.state = Failed
		return simerr.Config("analysis.Transient",
			"%d time points exceed the limit of %d", points, tr.opts.MaxSteps)
	}

	return tr.setup(ckt)
}

func (tr *Transient) Execute() error {
	if tr.Circuit == nil || tr.result == nil {
		return errNotSetUp("tran")
	}
	defer tr.teardown()

	for k := range tr.params.Points() {
		if err := tr.solvePoint(k, tr.params.TimeAt(k), false); err != nil {
			return err
		}
	}

	tr.finish()
	return nil
}
