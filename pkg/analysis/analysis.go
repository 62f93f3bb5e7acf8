// Package analysis drives DC and transient runs: it resolves every source
// and storage element, assembles the nodal equations for each time point,
// solves them and keeps the two-point voltage history the companion models
// read.
//
// Storage elements follow one bootstrap policy: until two solved time points
// exist their contribution is exactly zero, so a capacitor starts open and
// an inductor starts as a 0 V branch. DC analysis never has history and
// always runs under this policy.
package analysis

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/edp1096/transpice/internal/consts"
	"github.com/edp1096/transpice/pkg/circuit"
	"github.com/edp1096/transpice/pkg/companion"
	"github.com/edp1096/transpice/pkg/matrix"
	"github.com/edp1096/transpice/pkg/mna"
	"github.com/edp1096/transpice/pkg/simerr"
	"github.com/edp1096/transpice/pkg/waveform"
)

type Analysis interface {
	Setup(ckt *circuit.Circuit) error
	Execute() error
	GetResults() map[string][]float64
	Result() *Result
	State() State
}

type State int

const (
	Idle State = iota
	Assembling
	Solving
	Advancing
	Done
	Failed
)

var stateNames = [...]string{"idle", "assembling", "solving", "advancing", "done", "failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Solver solves an assembled system and returns x indexed like the system,
// with x[0] = 0.
type Solver interface {
	SolveSystem(sys *matrix.Dense) ([]float64, error)
}

type Options struct {
	// MaxSteps bounds the number of solved time points per run.
	// Zero means consts.DefaultMaxSteps.
	MaxSteps int

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Solver defaults to a sparse LU matrix sized for the circuit.
	Solver Solver
}

type BaseAnalysis struct {
	Circuit *circuit.Circuit

	name       string
	opts       Options
	logger     *slog.Logger
	assembler  *mna.Assembler
	solver     Solver
	ownMatrix  *matrix.CircuitMatrix
	waveforms  map[int]waveform.Waveform
	companions map[int]companion.Model
	history    history
	state      State
	result     *Result
}

func NewBaseAnalysis(name string, opts Options) *BaseAnalysis {
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = consts.DefaultMaxSteps
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &BaseAnalysis{
		name:   name,
		opts:   opts,
		logger: logger.With("analysis", name),
		state:  Idle,
	}
}

func (a *BaseAnalysis) State() State {
	return a.state
}

func (a *BaseAnalysis) Result() *Result {
	return a.result
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	if a.result == nil {
		return map[string][]float64{}
	}
	return a.result.Table()
}

// setup resolves every waveform and companion model of ckt. All
// configuration errors surface here, before anything is solved.
func (a *BaseAnalysis) setup(ckt *circuit.Circuit) (err error) {
	defer func() {
		if err != nil {
			a.state = Failed
		}
	}()

	a.Circuit = ckt
	a.state = Idle
	a.result = nil
	a.history.reset()

	if err = ckt.Validate(); err != nil {
		return err
	}

	a.waveforms = make(map[int]waveform.Waveform)
	a.companions = make(map[int]companion.Model)
	for i, comp := range ckt.GetComponents() {
		switch comp.Kind {
		case circuit.KindSource:
			w, err := waveform.Resolve(comp.Waveform, comp.Params)
			if err != nil {
				return simerr.WithComponent(err, comp.Name)
			}
			a.waveforms[i] = w

		case circuit.KindStorage:
			m, err := companion.Resolve(comp.Storage, []float64{comp.Value, float64(comp.Pos), float64(comp.Neg)})
			if err != nil {
				return simerr.WithComponent(err, comp.Name)
			}
			a.companions[i] = m
		}
	}

	a.assembler = mna.NewAssembler(ckt)

	a.solver = a.opts.Solver
	if a.solver == nil {
		mat, err := matrix.NewMatrix(a.assembler.Size())
		if err != nil {
			return simerr.Solve(a.name, -1, 0, err)
		}
		a.ownMatrix = mat
		a.solver = mat
	}

	a.result = newResult(ckt, a.assembler)
	a.logger.Info("setup complete",
		"circuit", ckt.Name(),
		"run", a.result.RunID,
		"nodes", a.assembler.Nodes(),
		"unknowns", a.assembler.Size(),
		"resistors", ckt.Count(circuit.KindResistor),
		"sources", ckt.Count(circuit.KindSource),
		"storage", ckt.Count(circuit.KindStorage))
	return nil
}

// excitation evaluates sources and companions for time t. With dc set,
// sources use their DC offset.
func (a *BaseAnalysis) excitation(t float64, dc bool) mna.Excitation {
	ex := mna.NewExcitation(len(a.Circuit.GetComponents()))

	for i, w := range a.waveforms {
		if dc {
			ex.Sources[i] = w.DCOffset()
		} else {
			ex.Sources[i] = w.At(t)
		}
	}

	prev, prevPrev, ok := a.history.pair()
	if !ok {
		return ex // bootstrap: zero contribution
	}
	for i, m := range a.companions {
		ex.Companions[i] = m.Contribution(prev, prevPrev)
	}
	return ex
}

// solvePoint runs one Assembling -> Solving -> Advancing cycle.
func (a *BaseAnalysis) solvePoint(step int, t float64, dc bool) error {
	a.state = Assembling
	sys, err := a.assembler.Assemble(a.Circuit, a.excitation(t, dc))
	if err != nil {
		return a.fail(simerr.Solve(a.name, step, t, err))
	}

	a.state = Solving
	x, err := a.solver.SolveSystem(sys)
	if err != nil {
		return a.fail(simerr.Solve(a.name, step, t, err))
	}
	if len(x) != sys.Size+1 {
		return a.fail(simerr.Solve(a.name, step, t,
			fmt.Errorf("solution has %d entries, want %d", len(x), sys.Size+1)))
	}
	if i := firstNonFinite(x); i >= 0 {
		return a.fail(simerr.Solve(a.name, step, t,
			fmt.Errorf("non-finite solution %g at unknown %d", x[i], i)))
	}

	a.state = Advancing
	nodes := a.assembler.Nodes()
	voltages := x[:nodes+1]
	a.history.push(t, voltages)
	a.Circuit.Nodes().SetVoltages(voltages)
	a.result.store(t, x, nodes)

	a.logger.Debug("point solved", "step", step, "time", t)
	return nil
}

func (a *BaseAnalysis) fail(err error) error {
	a.state = Failed
	a.logger.Error("analysis aborted", "err", err)
	return err
}

func (a *BaseAnalysis) finish() {
	a.state = Done
	a.logger.Info("analysis done", "points", len(a.result.Points))
}

func (a *BaseAnalysis) teardown() {
	if a.ownMatrix != nil {
		a.ownMatrix.Destroy()
		a.ownMatrix = nil
	}
}

func firstNonFinite(x []float64) int {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i
		}
	}
	return -1
}
