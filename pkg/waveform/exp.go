package waveform

import "math"

// Exponential is EXP(vInitial vPulse riseDelay riseTau fallDelay fallTau).
type Exponential struct {
	VInitial  float64
	VPulse    float64
	RiseDelay float64
	RiseTau   float64
	FallDelay float64
	FallTau   float64
}

func newExponential(params []float64) Exponential {
	return Exponential{
		VInitial:  param(params, 0, 0),
		VPulse:    param(params, 1, 0),
		RiseDelay: param(params, 2, 0),
		RiseTau:   param(params, 3, 0),
		FallDelay: param(params, 4, math.Inf(1)),
		FallTau:   param(params, 5, math.Inf(1)),
	}
}

// settle is the completed fraction of a first-order transition elapsed
// seconds after it started. A non-positive tau switches instantly.
func settle(elapsed, tau float64) float64 {
	if tau <= 0 {
		return 1
	}
	return 1 - math.Exp(-elapsed/tau)
}

func (e Exponential) at(t float64) float64 {
	v := e.VInitial
	if t > e.RiseDelay {
		v += (e.VPulse - e.VInitial) * settle(t-e.RiseDelay, e.RiseTau)
	}
	if t > e.FallDelay {
		v += (e.VInitial - e.VPulse) * settle(t-e.FallDelay, e.FallTau)
	}
	return v
}
