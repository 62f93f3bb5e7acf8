package waveform

import (
	"math"
	"sort"
)

// PWLEnd terminates the breakpoint list of a PWL parameter list. The value
// after it is the repeat flag (non-zero repeats).
var PWLEnd = math.Inf(1)

// Point is one PWL breakpoint.
type Point struct {
	Time  float64
	Value float64
}

// PiecewiseLinear is PWL(t0 v0 t1 v1 ... PWLEnd repeat).
type PiecewiseLinear struct {
	Points []Point // strictly increasing in Time
	Repeat bool
	Offset float64 // params[1]
}

// PWLParams encodes breakpoints into the parameter list Resolve expects.
func PWLParams(points []Point, repeat bool) []float64 {
	params := make([]float64, 0, 2*len(points)+2)
	for _, p := range points {
		params = append(params, p.Time, p.Value)
	}
	flag := 0.0
	if repeat {
		flag = 1
	}
	return append(params, PWLEnd, flag)
}

func newPiecewiseLinear(params []float64) PiecewiseLinear {
	pwl := PiecewiseLinear{Offset: param(params, 1, 0)}

	byTime := make(map[float64]float64)
	i := 0
	for ; i+1 < len(params); i += 2 {
		if params[i] == PWLEnd {
			break
		}
		byTime[params[i]] = params[i+1]
	}
	if i < len(params) && params[i] == PWLEnd {
		pwl.Repeat = param(params, i+1, 0) != 0
	}

	pwl.Points = make([]Point, 0, len(byTime))
	for t, v := range byTime {
		pwl.Points = append(pwl.Points, Point{Time: t, Value: v})
	}
	sort.Slice(pwl.Points, func(a, b int) bool { return pwl.Points[a].Time < pwl.Points[b].Time })

	return pwl
}

func (p PiecewiseLinear) at(t float64) float64 {
	n := len(p.Points)
	if n == 0 {
		return 0
	}

	first, last := p.Points[0], p.Points[n-1]
	if p.Repeat && last.Time > 0 {
		t = math.Mod(t, last.Time)
		if t < 0 {
			t += last.Time
		}
	}

	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}

	// first index with Time >= t; t is strictly inside so 0 < i < n
	i := sort.Search(n, func(k int) bool { return p.Points[k].Time >= t })
	t1, t2 := p.Points[i-1].Time, p.Points[i].Time
	v1, v2 := p.Points[i-1].Value, p.Points[i].Value
	slope := (v2 - v1) / (t2 - t1)
	return v1 + slope*(t-t1)
}
