package waveform

import "math"

// FrequencyModulated is SFFM(vOffset vAmp fCarrier mIndex fSignal tDelay).
type FrequencyModulated struct {
	VOffset  float64
	VAmp     float64
	FCarrier float64
	MIndex   float64
	FSignal  float64
	TDelay   float64
}

func newFrequencyModulated(params []float64) FrequencyModulated {
	return FrequencyModulated{
		VOffset:  param(params, 0, 0),
		VAmp:     param(params, 1, 0),
		FCarrier: param(params, 2, 0),
		MIndex:   param(params, 3, 1),
		FSignal:  param(params, 4, 0),
		TDelay:   param(params, 5, 0),
	}
}

func (f FrequencyModulated) at(t float64) float64 {
	if t < f.TDelay {
		return f.VOffset
	}
	e := t - f.TDelay
	return f.VOffset + f.VAmp*math.Sin(twoPi*f.FCarrier*e+f.MIndex*math.Sin(twoPi*f.FSignal*e))
}

// AmplitudeModulated is AM(aSignal fCarrier fMod cOffset tDelay), evaluated
// as aSignal*(cOffset+sin(2π fMod e))*sin(2π fCarrier e) with e = t-tDelay.
// The carrier passes through unmodulated only when fMod is 0 and cOffset is
// 1; with cOffset 0 and fMod 0 the output is identically 0.
type AmplitudeModulated struct {
	ASignal  float64
	FCarrier float64
	FMod     float64
	COffset  float64
	TDelay   float64
}

func newAmplitudeModulated(params []float64) AmplitudeModulated {
	return AmplitudeModulated{
		ASignal:  param(params, 0, 0),
		FCarrier: param(params, 1, 0),
		FMod:     param(params, 2, 0),
		COffset:  param(params, 3, 0),
		TDelay:   param(params, 4, 0),
	}
}

func (a AmplitudeModulated) at(t float64) float64 {
	if t < a.TDelay {
		return 0
	}
	e := t - a.TDelay
	return a.ASignal * (a.COffset + math.Sin(twoPi*a.FMod*e)) * math.Sin(twoPi*a.FCarrier*e)
}
