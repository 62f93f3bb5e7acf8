package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/transpice/pkg/circuit"
	"github.com/edp1096/transpice/pkg/companion"
	"github.com/edp1096/transpice/pkg/simerr"
	"github.com/edp1096/transpice/pkg/waveform"
)

const rcDeck = `
name: rc-lowpass
analysis:
  mode: tran
  end: 1m
  step: 10u
components:
  - {name: V1, type: V, nodes: [in, 0], waveform: pulse, params: [0, 5, 0, 1u, 1u, 400u, 1m]}
  - {name: R1, type: R, nodes: [in, out], value: 1k}
  - {name: C1, type: C, nodes: [out, gnd], value: 100n}
  - {name: I1, type: I, nodes: [out, 0], value: 1e-3}
  - name: V2
    type: V
    nodes: [ramp, 0]
    waveform: pwl
    points: [[0, 0], [500u, 1], [1m, 0]]
    repeat: true
  - {name: R2, type: R, nodes: [ramp, 0], value: 2.2meg}
`

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{"4.7k", 4.7e3},
		{"2meg", 2e6},
		{"100n", 100e-9},
		{"1ns", 1e-9},
		{"-3.3m", -3.3e-3},
		{"1e-6", 1e-6},
		{"1.5u", 1.5e-6},
		{"1M", 1e-3},
		{"2Meg", 2e6},
		{"2MEG", 2e6},
		{"3K", 3e3},
		{"5G", 5e9},
		{"1MS", 1e-3},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-18, tt.in)
	}

	for _, bad := range []string{"ten", "1x", "1megx", "k"} {
		_, err := ParseValue(bad)
		assert.Error(t, err, bad)
	}
}

func TestSuffixScalesResistor(t *testing.T) {
	d, err := Parse([]byte("name: x\ncomponents:\n" +
		"  - {name: R1, type: R, nodes: [a, 0], value: 1M}\n" +
		"  - {name: R2, type: R, nodes: [a, 0], value: 1MEG}\n"))
	require.NoError(t, err)
	ckt, err := d.Circuit()
	require.NoError(t, err)

	assert.InDelta(t, 1e-3, ckt.Component(0).Value, 1e-18)
	assert.InDelta(t, 1e6, ckt.Component(1).Value, 1e-9)
}

func TestParseBuildsCircuit(t *testing.T) {
	d, err := Parse([]byte(rcDeck))
	require.NoError(t, err)
	assert.Equal(t, "rc-lowpass", d.Name)

	ckt, err := d.Circuit()
	require.NoError(t, err)

	assert.Equal(t, circuit.Transient, ckt.Analysis.Mode)
	assert.Equal(t, 100, ckt.Analysis.Steps)
	assert.InDelta(t, 10e-6, ckt.Analysis.TimeStep, 1e-18)
	assert.Equal(t, []string{"0", "in", "out", "ramp"}, ckt.Nodes().Names())

	i, ok := ckt.Lookup("R1")
	require.True(t, ok)
	assert.InDelta(t, 1000, ckt.Component(i).Value, 1e-12)

	i, ok = ckt.Lookup("C1")
	require.True(t, ok)
	c1 := ckt.Component(i)
	assert.Equal(t, companion.Capacitor, c1.Storage)
	assert.Equal(t, 0, c1.Neg, "gnd is ground")

	i, ok = ckt.Lookup("V1")
	require.True(t, ok)
	v1 := ckt.Component(i)
	assert.Equal(t, waveform.PULSE, v1.Waveform)
	assert.InDeltaSlice(t, []float64{0, 5, 0, 1e-6, 1e-6, 400e-6, 1e-3}, v1.Params, 1e-15)

	i, ok = ckt.Lookup("I1")
	require.True(t, ok)
	assert.Equal(t, circuit.CurrentSource, ckt.Component(i).Source)
	assert.Equal(t, waveform.DC, ckt.Component(i).Waveform)

	i, ok = ckt.Lookup("V2")
	require.True(t, ok)
	w, err := waveform.Resolve(ckt.Component(i).Waveform, ckt.Component(i).Params)
	require.NoError(t, err)
	assert.True(t, w.PWL.Repeat)
	assert.InDelta(t, 0.5, w.At(250e-6), 1e-12)

	require.NoError(t, ckt.Validate())
}

func TestAnalysisForms(t *testing.T) {
	ptr := func(v float64) *Value { x := Value(v); return &x }
	steps := func(n int) *int { return &n }

	tests := []struct {
		name  string
		in    Analysis
		steps int
		end   float64
		err   bool
	}{
		{"dc", Analysis{Mode: "dc"}, 0, 0, false},
		{"empty is dc", Analysis{}, 0, 0, false},
		{"end and step", Analysis{Mode: "tran", End: ptr(1), Step: ptr(0.1)}, 10, 1, false},
		{"end and steps", Analysis{Mode: "tran", End: ptr(2), Steps: steps(4)}, 4, 2, false},
		{"step and steps", Analysis{Mode: "tran", Start: 1, Step: ptr(0.5), Steps: steps(4)}, 4, 3, false},
		{"inconsistent", Analysis{Mode: "tran", End: ptr(1), Step: ptr(0.1), Steps: steps(3)}, 0, 0, true},
		{"underspecified", Analysis{Mode: "tran", End: ptr(1)}, 0, 0, true},
		{"unknown mode", Analysis{Mode: "ac"}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.in.build()
			if tt.err {
				assert.ErrorIs(t, err, simerr.ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.steps, a.Steps)
			assert.InDelta(t, tt.end, a.End, 1e-12)
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"unknown field": "name: x\ncomponent: []\n",
		"no name":       "components: [{name: R1, type: R, nodes: [a, 0], value: 1}]\n",
		"no components": "name: x\n",
		"three nodes":   "name: x\ncomponents: [{name: R1, type: R, nodes: [a, b, 0], value: 1}]\n",
		"bad value":     "name: x\ncomponents: [{name: R1, type: R, nodes: [a, 0], value: lots}]\n",
		"empty":         "",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.ErrorIs(t, err, simerr.ErrConfig)
		})
	}
}

func TestCircuitRejects(t *testing.T) {
	tests := map[string]string{
		"unknown type":        "{name: Q1, type: Q, nodes: [a, 0], value: 1}",
		"resistor no value":   "{name: R1, type: R, nodes: [a, 0]}",
		"storage no value":    "{name: C1, type: C, nodes: [a, 0]}",
		"source no params":    "{name: V1, type: V, nodes: [a, 0], waveform: sin}",
		"points on pulse":     "{name: V1, type: V, nodes: [a, 0], waveform: pulse, points: [[0, 1]]}",
		"short breakpoint":    "{name: V1, type: V, nodes: [a, 0], waveform: pwl, points: [[0]]}",
		"unknown waveform":    "{name: V1, type: V, nodes: [a, 0], waveform: square, params: [1]}",
		"negative resistance": "{name: R1, type: R, nodes: [a, 0], value: -1}",
	}
	for name, comp := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := Parse([]byte("name: x\ncomponents: [" + comp + "]\n"))
			require.NoError(t, err)
			_, err = d.Circuit()
			assert.ErrorIs(t, err, simerr.ErrConfig)
		})
	}
}

func TestReservedStorageKindLoads(t *testing.T) {
	d, err := Parse([]byte("name: x\ncomponents: [{name: T1, type: vtrigger, nodes: [a, 0], value: 1}]\n"))
	require.NoError(t, err)
	ckt, err := d.Circuit()
	require.NoError(t, err)
	assert.Equal(t, companion.VoltageTrigger, ckt.Component(0).Storage)
}

func TestLoadCircuit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rcDeck), 0o644))

	ckt, err := LoadCircuit(path)
	require.NoError(t, err)
	assert.Equal(t, "rc-lowpass", ckt.Name())

	_, err = LoadCircuit(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
