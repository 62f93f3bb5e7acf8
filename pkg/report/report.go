// Package report renders analysis results as a text table, as JSON or as a
// waveform plot.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/edp1096/transpice/pkg/analysis"
	"github.com/edp1096/transpice/pkg/util"
)

// ValidFormats lists the formats Write accepts.
var ValidFormats = []string{"text", "json"}

// Write renders res in format.
func Write(w io.Writer, res *analysis.Result, format string) error {
	switch format {
	case "text":
		return Text(w, res)
	case "json":
		return JSON(w, res)
	}
	return fmt.Errorf("invalid format %q: must be one of %v", format, ValidFormats)
}

// signalNames splits the table keys into sorted voltage and current names.
func signalNames(table map[string][]float64) (voltages, currents []string) {
	for name := range table {
		switch {
		case strings.HasPrefix(name, "V("):
			voltages = append(voltages, name)
		case strings.HasPrefix(name, "I("):
			currents = append(currents, name)
		}
	}
	sort.Strings(voltages)
	sort.Strings(currents)
	return voltages, currents
}

// Text prints the operating point as name = value lines and a transient
// run as one row per time point.
func Text(w io.Writer, res *analysis.Result) error {
	table := res.Table()
	voltages, currents := signalNames(table)

	var b strings.Builder
	fmt.Fprintf(&b, "Circuit: %s (run %s)\n", res.Circuit, res.RunID)

	times := table["TIME"]
	if res.Mode != "tran" {
		b.WriteString("\nNode Voltages:\n")
		for _, name := range voltages {
			fmt.Fprintf(&b, "%s = %s\n", name, util.FormatValueFactor(table[name][0], "V"))
		}
		b.WriteString("\nBranch Currents:\n")
		for _, name := range currents {
			fmt.Fprintf(&b, "%s = %s\n", name, util.FormatValueFactor(table[name][0], "A"))
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "\nTransient Analysis Results (%d time points):\n", len(times))
	b.WriteString("Time        Node Voltages        Branch Currents\n")
	b.WriteString("------------------------------------------------\n")
	for i, t := range times {
		fmt.Fprintf(&b, "%9s  ", util.FormatValueFactor(t, "s"))
		for _, name := range voltages {
			fmt.Fprintf(&b, "%s=%s  ", name, util.FormatValueFactor(table[name][i], "V"))
		}
		for _, name := range currents {
			fmt.Fprintf(&b, "%s=%s  ", name, util.FormatValueFactor(table[name][i], "A"))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// document is the JSON shape: run metadata plus the flattened table.
type document struct {
	RunID   string               `json:"run_id"`
	Circuit string               `json:"circuit"`
	Mode    string               `json:"mode"`
	Points  int                  `json:"points"`
	Signals map[string][]float64 `json:"signals"`
}

func JSON(w io.Writer, res *analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{
		RunID:   res.RunID,
		Circuit: res.Circuit,
		Mode:    res.Mode,
		Points:  len(res.Points),
		Signals: res.Table(),
	})
}
