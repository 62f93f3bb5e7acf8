package analysis

import (
	"slices"

	"github.com/edp1096/transpice/pkg/companion"
)

// history keeps the two most recent solved time points.
type history struct {
	samples [2]companion.Sample
	next    int // slot the next push overwrites
	count   int
}

func (h *history) push(t float64, voltages []float64) {
	h.samples[h.next] = companion.Sample{Time: t, Voltages: slices.Clone(voltages)}
	h.next ^= 1
	if h.count < len(h.samples) {
		h.count++
	}
}

// pair returns the newest sample and the one before it. ok is false until
// two samples exist.
func (h *history) pair() (prev, prevPrev companion.Sample, ok bool) {
	if h.count < 2 {
		return companion.Sample{}, companion.Sample{}, false
	}
	return h.samples[h.next^1], h.samples[h.next], true
}

func (h *history) len() int {
	return h.count
}

func (h *history) reset() {
	*h = history{}
}
