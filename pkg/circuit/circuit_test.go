package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/transpice/pkg/companion"
	"github.com/edp1096/transpice/pkg/simerr"
	"github.com/edp1096/transpice/pkg/waveform"
)

func TestNodeRegistry(t *testing.T) {
	r := NewNodeRegistry()
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 0, r.Unknowns())

	for _, g := range []string{"0", "gnd", "GND"} {
		assert.Equal(t, 0, r.Intern(g))
	}

	a := r.Intern("in")
	b := r.Intern("out")
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, a, r.Intern("in"))
	assert.Equal(t, []string{"0", "in", "out"}, r.Names())

	r.SetVoltages([]float64{9, 1.5, 2.5})
	assert.Equal(t, []float64{0, 1.5, 2.5}, r.Voltages())
	assert.Equal(t, 1.5, r.Node(1).Voltage)
}

func TestNodeNamesNormalized(t *testing.T) {
	r := NewNodeRegistry()
	composed := r.Intern("n\u00e9t")
	assert.Equal(t, composed, r.Intern("ne\u0301t"))
	id, ok := r.Lookup("ne\u0301t")
	assert.True(t, ok)
	assert.Equal(t, composed, id)
	assert.Equal(t, 1, r.Unknowns())
}

func TestCircuitAdd(t *testing.T) {
	c := New("rc")

	r1, err := c.AddResistor("R1", "in", "out", 1e3)
	require.NoError(t, err)
	_, err = c.AddResistor("R2", "out", "0", 2e3)
	require.NoError(t, err)
	v1, err := c.AddVoltageSource("V1", "in", "gnd", waveform.DC, 5)
	require.NoError(t, err)
	c1, err := c.AddCapacitor("C1", "out", "0", 1e-6)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Nodes().Unknowns())
	assert.Equal(t, 2, c.Count(KindResistor))
	assert.Equal(t, 1, c.Component(r1).Seq)
	assert.Equal(t, 2, c.Component(1).Seq)
	assert.Equal(t, 1, c.Component(v1).Seq)
	assert.Equal(t, 1, c.Component(c1).Seq)
	assert.True(t, c.Component(v1).IsVoltage())
	assert.False(t, c.Component(c1).IsVoltage())

	idx, ok := c.Lookup("C1")
	require.True(t, ok)
	assert.Equal(t, c1, idx)

	require.NoError(t, c.Validate())
}

func TestCircuitAddRejects(t *testing.T) {
	c := New("bad")
	_, err := c.AddResistor("R1", "a", "0", 100)
	require.NoError(t, err)

	_, err = c.AddResistor("R1", "a", "0", 100)
	assert.ErrorIs(t, err, simerr.ErrConfig, "duplicate name")

	_, err = c.AddResistor("R2", "a", "0", 0)
	assert.ErrorIs(t, err, simerr.ErrConfig, "zero resistance")

	_, err = c.Add(Component{Kind: KindResistor, Name: "R3", Pos: 1, Neg: 9, Value: 1})
	assert.ErrorIs(t, err, simerr.ErrConfig, "dangling node")

	_, err = c.Add(Component{Kind: KindResistor, Pos: 1, Value: 1})
	assert.ErrorIs(t, err, simerr.ErrConfig, "empty name")
}

func TestReservedStorageAcceptedUntilResolved(t *testing.T) {
	c := New("reserved")
	_, err := c.AddStorage("X1", "a", "0", companion.VoltageTrigger, 1)
	require.NoError(t, err)
}

func TestSourceParamsAreCopied(t *testing.T) {
	c := New("copy")
	params := []float64{0, 5}
	i, err := c.AddVoltageSource("V1", "a", "0", waveform.PULSE, params...)
	require.NoError(t, err)

	params[1] = 99
	assert.Equal(t, []float64{0, 5}, c.Component(i).Params)
}

func TestValidateEmptyCircuit(t *testing.T) {
	assert.ErrorIs(t, New("empty").Validate(), simerr.ErrConfig)
}

func TestGetNodeVoltage(t *testing.T) {
	c := New("v")
	a := c.Node("a")
	c.Nodes().SetVoltages([]float64{0, 3})
	assert.Equal(t, 3.0, c.GetNodeVoltage(a))
	assert.Zero(t, c.GetNodeVoltage(0))
	assert.Zero(t, c.GetNodeVoltage(42))
}
