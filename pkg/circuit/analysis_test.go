package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/transpice/pkg/simerr"
)

func TestTransientRoundTrip(t *testing.T) {
	byStep, err := NewTransient(0, 1, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 10, byStep.Steps)

	bySteps, err := NewTransientSteps(0, 1, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, bySteps.TimeStep, 1e-15)

	assert.Equal(t, byStep.Times(), bySteps.Times())
	assert.Len(t, byStep.Times(), 11)
	assert.Equal(t, 0.0, byStep.TimeAt(0))
	assert.InDelta(t, 1.0, byStep.TimeAt(10), 1e-12)
}

func TestTransientSpan(t *testing.T) {
	a, err := NewTransientSpan(1, 0.25, 8)
	require.NoError(t, err)
	assert.Equal(t, 3.0, a.End)
	assert.Equal(t, 9, a.Points())
}

func TestTransientRoundsStepCount(t *testing.T) {
	a, err := NewTransient(0, 1e-3, 3e-4)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Steps)

	zero, err := NewTransient(2, 2, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0, zero.Steps)
	assert.Equal(t, []float64{2}, zero.Times())
}

func TestTransientRejects(t *testing.T) {
	_, err := NewTransient(0, 1, 0)
	assert.ErrorIs(t, err, simerr.ErrConfig)

	_, err = NewTransient(1, 0, 0.1)
	assert.ErrorIs(t, err, simerr.ErrConfig)

	_, err = NewTransientSteps(0, 1, 0)
	assert.ErrorIs(t, err, simerr.ErrConfig)

	_, err = NewTransientSpan(0, 0.1, -1)
	assert.ErrorIs(t, err, simerr.ErrConfig)

	inconsistent := Analysis{Mode: Transient, Start: 0, End: 1, TimeStep: 0.1, Steps: 3}
	assert.ErrorIs(t, inconsistent.Validate(), simerr.ErrConfig)
}

func TestDCAnalysis(t *testing.T) {
	a := NewDC()
	require.NoError(t, a.Validate())
	assert.Equal(t, 1, a.Points())
	assert.Equal(t, []float64{0}, a.Times())
	assert.Equal(t, "dc", a.Mode.String())
}
