// Package waveform evaluates independent source excitations as a function
// of simulation time.
//
// A source is described by a Kind and an ordered parameter list. The length of
// the list decides which trailing parameters fall back to their defaults, so
// "PULSE(0 5 1)" and "PULSE(0 5 1 0 0 0 inf inf)" resolve to the same
// waveform. Resolve turns the raw list into a Waveform value; Waveform.At is
// a pure function of time.
package waveform

import (
	"fmt"
	"math"
	"strings"

	"github.com/edp1096/transpice/pkg/simerr"
)

type Kind int

const (
	DC Kind = iota
	PULSE
	SIN
	EXP
	SFFM
	AM
	PWL
)

var kindNames = [...]string{
	DC:    "dc",
	PULSE: "pulse",
	SIN:   "sin",
	EXP:   "exp",
	SFFM:  "sffm",
	AM:    "am",
	PWL:   "pwl",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts the SPICE keyword of a waveform, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "sine" {
		name = "sin"
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, simerr.Config("waveform.ParseKind", "unknown waveform %q", s)
}

// Waveform is a resolved source excitation. Only the parameter block that
// matches Kind is meaningful.
type Waveform struct {
	Kind  Kind
	Value float64 // DC
	Pulse Pulse
	Sin   Sine
	Exp   Exponential
	SFFM  FrequencyModulated
	AM    AmplitudeModulated
	PWL   PiecewiseLinear
}

// Resolve builds the waveform of kind from params.
func Resolve(kind Kind, params []float64) (Waveform, error) {
	w := Waveform{Kind: kind}

	switch kind {
	case DC:
		w.Value = param(params, 0, 0)
	case PULSE:
		p, err := newPulse(params)
		if err != nil {
			return Waveform{}, err
		}
		w.Pulse = p
	case SIN:
		w.Sin = newSine(params)
	case EXP:
		w.Exp = newExponential(params)
	case SFFM:
		w.SFFM = newFrequencyModulated(params)
	case AM:
		w.AM = newAmplitudeModulated(params)
	case PWL:
		w.PWL = newPiecewiseLinear(params)
	default:
		return Waveform{}, simerr.Config("waveform.Resolve", "unknown waveform kind %d", int(kind))
	}

	return w, nil
}

// At returns the instantaneous value at time t.
func (w Waveform) At(t float64) float64 {
	switch w.Kind {
	case DC:
		return w.Value
	case PULSE:
		return w.Pulse.at(t)
	case SIN:
		return w.Sin.at(t)
	case EXP:
		return w.Exp.at(t)
	case SFFM:
		return w.SFFM.at(t)
	case AM:
		return w.AM.at(t)
	case PWL:
		return w.PWL.at(t)
	default:
		return 0
	}
}

// DCOffset is the value used for bias-point analysis.
func (w Waveform) DCOffset() float64 {
	switch w.Kind {
	case DC:
		return w.Value
	case PULSE:
		return w.Pulse.VInitial
	case SIN:
		return w.Sin.VOffset
	case EXP:
		return w.Exp.VInitial
	case SFFM:
		return w.SFFM.VOffset
	case PWL:
		return w.PWL.Offset
	default:
		return 0
	}
}

// param returns params[i], or def when the list is too short.
func param(params []float64, i int, def float64) float64 {
	if i < len(params) {
		return params[i]
	}
	return def
}

const twoPi = 2 * math.Pi
