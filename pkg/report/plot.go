package report

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/edp1096/transpice/pkg/analysis"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// NewPlot draws the node voltages of res against time. signals selects
// V(...) keys of the result table; empty means every node.
func NewPlot(res *analysis.Result, signals ...string) (*plot.Plot, error) {
	table := res.Table()
	if len(signals) == 0 {
		signals, _ = signalNames(table)
	}

	p := plot.New()
	p.Title.Text = res.Circuit
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "voltage (V)"
	p.Add(plotter.NewGrid())

	times := table["TIME"]
	for i, name := range signals {
		values, ok := table[name]
		if !ok {
			return nil, fmt.Errorf("no signal %s in result", name)
		}

		xys := make(plotter.XYs, len(times))
		for k := range times {
			xys[k].X = times[k]
			xys[k].Y = values[k]
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to plot %s: %w", name, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	return p, nil
}

// SavePlot writes the plot to path; the extension picks the image format.
func SavePlot(res *analysis.Result, path string, signals ...string) error {
	p, err := NewPlot(res, signals...)
	if err != nil {
		return err
	}
	return p.Save(plotWidth, plotHeight, path)
}

// WritePlot renders the plot as format (png, svg, pdf, ...) into w.
func WritePlot(w io.Writer, res *analysis.Result, format string, signals ...string) error {
	p, err := NewPlot(res, signals...)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

