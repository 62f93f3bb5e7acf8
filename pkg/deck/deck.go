// Package deck loads a circuit descriptor written in YAML and builds the
// circuit and analysis it describes.
//
//	name: rc-lowpass
//	analysis: {mode: tran, end: 1m, step: 10u}
//	components:
//	  - {name: V1, type: V, nodes: [in, 0], waveform: pulse, params: [0, 5, 0, 1u, 1u, 400u, 1m]}
//	  - {name: R1, type: R, nodes: [in, out], value: 1k}
//	  - {name: C1, type: C, nodes: [out, 0], value: 100n}
//
// Component types are R, V and I, or any storage kind the companion engine
// knows (C, L, capacitor, inductor, vtrigger, ...).
package deck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edp1096/transpice/pkg/circuit"
	"github.com/edp1096/transpice/pkg/companion"
	"github.com/edp1096/transpice/pkg/simerr"
	"github.com/edp1096/transpice/pkg/waveform"
)

type Deck struct {
	Name       string    `yaml:"name"`
	Analysis   Analysis  `yaml:"analysis"`
	Components []Element `yaml:"components"`
}

// Analysis selects dc or tran. A transient needs two of end, step and
// steps; start defaults to 0.
type Analysis struct {
	Mode  string `yaml:"mode"`
	Start Value  `yaml:"start,omitempty"`
	End   *Value `yaml:"end,omitempty"`
	Step  *Value `yaml:"step,omitempty"`
	Steps *int   `yaml:"steps,omitempty"`
}

type Element struct {
	Name  string   `yaml:"name"`
	Type  string   `yaml:"type"`
	Nodes []string `yaml:"nodes"`
	Value *Value   `yaml:"value,omitempty"`

	// Sources only. Waveform defaults to dc.
	Waveform string  `yaml:"waveform,omitempty"`
	Params   []Value `yaml:"params,omitempty"`

	// PWL breakpoints as [time, value] pairs, an alternative to params.
	Points [][]Value `yaml:"points,omitempty"`
	Repeat bool      `yaml:"repeat,omitempty"`
}

// Load reads and parses a descriptor file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a descriptor, rejecting unknown fields.
func Parse(data []byte) (*Deck, error) {
	var d Deck
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, simerr.Config("deck.Parse", "failed to parse YAML: %w", err)
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Deck) validate() error {
	const op = "deck.Parse"

	if d.Name == "" {
		return simerr.Config(op, "name is required")
	}
	if len(d.Components) == 0 {
		return simerr.Config(op, "components list is required and must be non-empty")
	}
	for i, e := range d.Components {
		if e.Name == "" {
			return simerr.Config(op, "component %d has no name", i)
		}
		if len(e.Nodes) != 2 {
			return simerr.WithComponent(
				simerr.Config(op, "need exactly 2 nodes, got %d", len(e.Nodes)), e.Name)
		}
	}
	return nil
}

// Circuit builds the described circuit, analysis included.
func (d *Deck) Circuit() (*circuit.Circuit, error) {
	ckt := circuit.New(d.Name)

	for _, e := range d.Components {
		if err := e.add(ckt); err != nil {
			return nil, simerr.WithComponent(err, e.Name)
		}
	}

	a, err := d.Analysis.build()
	if err != nil {
		return nil, err
	}
	ckt.Analysis = a
	return ckt, nil
}

// LoadCircuit is Load followed by Circuit.
func LoadCircuit(path string) (*circuit.Circuit, error) {
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	return d.Circuit()
}

func (e Element) add(ckt *circuit.Circuit) error {
	const op = "deck.Circuit"
	pos, neg := e.Nodes[0], e.Nodes[1]

	switch strings.ToUpper(e.Type) {
	case "R":
		if e.Value == nil {
			return simerr.Config(op, "resistor needs a value")
		}
		_, err := ckt.AddResistor(e.Name, pos, neg, float64(*e.Value))
		return err

	case "V", "I":
		kind, params, err := e.source()
		if err != nil {
			return err
		}
		if strings.EqualFold(e.Type, "V") {
			_, err = ckt.AddVoltageSource(e.Name, pos, neg, kind, params...)
		} else {
			_, err = ckt.AddCurrentSource(e.Name, pos, neg, kind, params...)
		}
		return err
	}

	kind, err := companion.ParseKind(e.Type)
	if err != nil {
		return err
	}
	if e.Value == nil {
		return simerr.Config(op, "%s needs a value", kind)
	}
	_, err = ckt.AddStorage(e.Name, pos, neg, kind, float64(*e.Value))
	return err
}

func (e Element) source() (waveform.Kind, []float64, error) {
	const op = "deck.Circuit"

	kind := waveform.DC
	if e.Waveform != "" {
		k, err := waveform.ParseKind(e.Waveform)
		if err != nil {
			return 0, nil, err
		}
		kind = k
	}

	switch {
	case len(e.Points) > 0:
		if kind != waveform.PWL {
			return 0, nil, simerr.Config(op, "points given for a %s source", kind)
		}
		points := make([]waveform.Point, len(e.Points))
		for i, p := range e.Points {
			if len(p) != 2 {
				return 0, nil, simerr.Config(op, "breakpoint %d needs [time, value]", i)
			}
			points[i] = waveform.Point{Time: float64(p[0]), Value: float64(p[1])}
		}
		return kind, waveform.PWLParams(points, e.Repeat), nil

	case len(e.Params) > 0:
		return kind, floats(e.Params), nil

	case kind == waveform.DC && e.Value != nil:
		return kind, []float64{float64(*e.Value)}, nil
	}
	return 0, nil, simerr.Config(op, "%s source has no parameters", kind)
}

func (a Analysis) build() (circuit.Analysis, error) {
	const op = "deck.Analysis"

	switch strings.ToLower(a.Mode) {
	case "", "dc", "op":
		return circuit.NewDC(), nil
	case "tran", "transient":
	default:
		return circuit.Analysis{}, simerr.Config(op, "unknown analysis mode %q", a.Mode)
	}

	start := float64(a.Start)
	switch {
	case a.End != nil && a.Step != nil:
		tran, err := circuit.NewTransient(start, float64(*a.End), float64(*a.Step))
		if err != nil {
			return tran, err
		}
		if a.Steps != nil && *a.Steps != tran.Steps {
			return circuit.Analysis{}, simerr.Config(op,
				"steps %d disagree with end and step (%d)", *a.Steps, tran.Steps)
		}
		return tran, nil
	case a.End != nil && a.Steps != nil:
		return circuit.NewTransientSteps(start, float64(*a.End), *a.Steps)
	case a.Step != nil && a.Steps != nil:
		return circuit.NewTransientSpan(start, float64(*a.Step), *a.Steps)
	}
	return circuit.Analysis{}, simerr.Config(op, "transient needs two of end, step and steps")
}
