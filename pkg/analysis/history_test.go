package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRing(t *testing.T) {
	var h history

	_, _, ok := h.pair()
	assert.False(t, ok)

	v := []float64{0, 1}
	h.push(0.0, v)
	v[1] = 42
	assert.Equal(t, []float64{0, 1}, h.samples[0].Voltages, "push copies the vector")

	_, _, ok = h.pair()
	assert.False(t, ok, "one sample is not enough")

	h.push(0.1, []float64{0, 2})
	prev, prevPrev, ok := h.pair()
	require.True(t, ok)
	assert.Equal(t, 0.1, prev.Time)
	assert.Equal(t, 0.0, prevPrev.Time)

	h.push(0.2, []float64{0, 3})
	prev, prevPrev, ok = h.pair()
	require.True(t, ok)
	assert.Equal(t, 0.2, prev.Time)
	assert.Equal(t, []float64{0, 3}, prev.Voltages)
	assert.Equal(t, 0.1, prevPrev.Time)
	assert.Equal(t, []float64{0, 2}, prevPrev.Voltages)
	assert.Equal(t, 2, h.len())

	h.reset()
	assert.Zero(t, h.len())
	_, _, ok = h.pair()
	assert.False(t, ok)
}
