package waveform

import "math"

// Sine is SIN(vOffset vAmp freq tDelay theta phi nCycles). Phi is in radians.
type Sine struct {
	VOffset float64
	VAmp    float64
	Freq    float64
	TDelay  float64
	Theta   float64
	Phi     float64
	NCycles float64
}

func newSine(params []float64) Sine {
	return Sine{
		VOffset: param(params, 0, 0),
		VAmp:    param(params, 1, 0),
		Freq:    param(params, 2, 0),
		TDelay:  param(params, 3, 0),
		Theta:   param(params, 4, 0),
		Phi:     param(params, 5, 0),
		NCycles: param(params, 6, math.Inf(1)),
	}
}

// span is the active duration nCycles/freq.
func (s Sine) span() float64 {
	switch {
	case s.NCycles == 0:
		return 0
	case s.Freq == 0:
		return math.Inf(1)
	}
	return s.NCycles / s.Freq
}

func (s Sine) at(t float64) float64 {
	if t < s.TDelay {
		return s.VOffset + s.VAmp*math.Sin(s.Phi)
	}

	// effTime runs negative once the delay has passed; exp(theta*effTime)
	// therefore decays for positive theta.
	effTime := s.TDelay - t
	if span := s.span(); t > span+s.TDelay {
		effTime = -span
	}

	return s.VOffset + s.VAmp*math.Exp(s.Theta*effTime)*math.Sin(twoPi*s.Freq*(-effTime)+s.Phi)
}
