package analysis

import (
	"github.com/edp1096/transpice/pkg/circuit"
)

// OperatingPoint is the DC analysis: one solve with every source at its DC
// offset and every storage element under the bootstrap policy.
type OperatingPoint struct{ BaseAnalysis }

func NewOP(opts Options) *OperatingPoint {
	return &OperatingPoint{
		BaseAnalysis: *NewBaseAnalysis("op", opts),
	}
}

func (op *OperatingPoint) Setup(ckt *circuit.Circuit) error {
	return op.setup(ckt)
}

func (op *OperatingPoint) Execute() error {
	if op.Circuit == nil || op.result == nil {
		return errNotSetUp("op")
	}
	defer op.teardown()

	if err := op.solvePoint(0, 0, true); err != nil {
		return err
	}

	op.finish()
	return nil
}
