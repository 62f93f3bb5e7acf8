package waveform

import (
	"math"

	"github.com/edp1096/transpice/pkg/simerr"
)

// Pulse is PULSE(vInitial vOn tDelay tRise tFall tOn tPeriod nCycles).
type Pulse struct {
	VInitial float64
	VOn      float64
	TDelay   float64
	TRise    float64
	TFall    float64
	TOn      float64
	TPeriod  float64
	NCycles  float64
}

func newPulse(params []float64) (Pulse, error) {
	p := Pulse{
		VInitial: param(params, 0, 0),
		VOn:      param(params, 1, 0),
		TDelay:   param(params, 2, 0),
		TRise:    param(params, 3, 0),
		TFall:    param(params, 4, 0),
		TOn:      param(params, 5, 0),
		TPeriod:  param(params, 6, math.Inf(1)),
		NCycles:  param(params, 7, math.Inf(1)),
	}

	ramps := p.TRise + p.TFall
	if p.TOn != 0 && p.TPeriod < ramps+p.TOn {
		return Pulse{}, simerr.Config("waveform.Pulse",
			"period %g shorter than rise+fall+on time %g", p.TPeriod, ramps+p.TOn)
	}
	if p.TOn == 0 && ramps > 0 && p.TPeriod < ramps {
		scale := math.Max(p.TPeriod, 0) / ramps
		p.VOn = p.VInitial + (p.VOn-p.VInitial)*scale
		p.TRise *= scale
		p.TFall *= scale
	}

	return p, nil
}

// end is the time the last cycle finishes. A zero period has no cycles.
func (p Pulse) end() float64 {
	if p.NCycles == 0 || p.TPeriod == 0 {
		return p.TDelay
	}
	return p.NCycles*p.TPeriod + p.TDelay
}

func (p Pulse) at(t float64) float64 {
	if t < p.TDelay || t > p.end() {
		return p.VInitial
	}

	t -= p.TDelay
	if p.TPeriod > 0 && !math.IsInf(p.TPeriod, 1) {
		t = math.Mod(t, p.TPeriod)
	}

	if t <= p.TRise {
		if p.TRise == 0 {
			return p.VOn
		}
		return p.VInitial + (p.VOn-p.VInitial)*t/p.TRise
	}

	if t <= p.TRise+p.TOn {
		return p.VOn
	}

	fallStart := p.TRise + p.TOn
	if t <= fallStart+p.TFall {
		return p.VOn - (p.VOn-p.VInitial)*(t-fallStart)/p.TFall
	}

	return p.VInitial
}
