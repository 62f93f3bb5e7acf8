package circuit

import (
	"math"

	"github.com/edp1096/transpice/pkg/simerr"
)

type Mode int

const (
	DC Mode = iota
	Transient
)

func (m Mode) String() string {
	if m == Transient {
		return "tran"
	}
	return "dc"
}

// Analysis describes what to run. For Transient, Start, End, TimeStep and
// Steps always satisfy Steps == round((End-Start)/TimeStep).
type Analysis struct {
	Mode     Mode
	Start    float64
	End      float64
	TimeStep float64
	Steps    int
}

func NewDC() Analysis {
	return Analysis{Mode: DC}
}

// NewTransient derives the step count from the step size.
func NewTransient(start, end, timeStep float64) (Analysis, error) {
	if !finite(start, end, timeStep) || timeStep <= 0 {
		return Analysis{}, simerr.Config("circuit.NewTransient", "invalid time step %g", timeStep)
	}
	if end < start {
		return Analysis{}, simerr.Config("circuit.NewTransient", "end %g before start %g", end, start)
	}

	a := Analysis{
		Mode:     Transient,
		Start:    start,
		End:      end,
		TimeStep: timeStep,
		Steps:    int(math.Round((end - start) / timeStep)),
	}
	return a, a.Validate()
}

// NewTransientSteps derives the step size from the step count.
func NewTransientSteps(start, end float64, steps int) (Analysis, error) {
	if steps <= 0 {
		return Analysis{}, simerr.Config("circuit.NewTransientSteps", "step count %d must be positive", steps)
	}
	if !finite(start, end) || end <= start {
		return Analysis{}, simerr.Config("circuit.NewTransientSteps", "invalid interval [%g, %g]", start, end)
	}

	a := Analysis{
		Mode:     Transient,
		Start:    start,
		End:      end,
		TimeStep: (end - start) / float64(steps),
		Steps:    steps,
	}
	return a, a.Validate()
}

// NewTransientSpan derives the end time from the step size and count.
func NewTransientSpan(start, timeStep float64, steps int) (Analysis, error) {
	if !finite(start, timeStep) || timeStep <= 0 || steps < 0 {
		return Analysis{}, simerr.Config("circuit.NewTransientSpan",
			"invalid step %g x %d", timeStep, steps)
	}

	a := Analysis{
		Mode:     Transient,
		Start:    start,
		End:      start + float64(steps)*timeStep,
		TimeStep: timeStep,
		Steps:    steps,
	}
	return a, a.Validate()
}

func (a Analysis) Validate() error {
	if a.Mode == DC {
		return nil
	}
	if a.Mode != Transient {
		return simerr.Config("circuit.Analysis", "unknown mode %d", int(a.Mode))
	}
	if !finite(a.Start, a.End, a.TimeStep) || a.TimeStep <= 0 || a.End < a.Start || a.Steps < 0 {
		return simerr.Config("circuit.Analysis", "invalid transient (%g, %g, %g, %d)",
			a.Start, a.End, a.TimeStep, a.Steps)
	}
	if want := int(math.Round((a.End - a.Start) / a.TimeStep)); want != a.Steps {
		return simerr.Config("circuit.Analysis", "steps %d inconsistent with span/step %d", a.Steps, want)
	}
	return nil
}

// Points is the number of solved time points: Steps+1, or 1 for DC.
func (a Analysis) Points() int {
	if a.Mode == DC {
		return 1
	}
	return a.Steps + 1
}

// TimeAt returns the k-th grid time.
func (a Analysis) TimeAt(k int) float64 {
	if a.Mode == DC {
		return 0
	}
	return a.Start + float64(k)*a.TimeStep
}

// Times returns the whole grid.
func (a Analysis) Times() []float64 {
	times := make([]float64, a.Points())
	for k := range times {
		times[k] = a.TimeAt(k)
	}
	return times
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
