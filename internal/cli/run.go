package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/edp1096/transpice/internal/consts"
	"github.com/edp1096/transpice/pkg/analysis"
	"github.com/edp1096/transpice/pkg/circuit"
	"github.com/edp1096/transpice/pkg/deck"
	"github.com/edp1096/transpice/pkg/matrix"
	"github.com/edp1096/transpice/pkg/mna"
	"github.com/edp1096/transpice/pkg/report"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Plot     string
	Signals  []string
	MaxSteps int
	Dump     bool
}

func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <deck.yaml>",
		Short: "Simulate a circuit deck",
		Long: `Load a circuit deck, run the analysis it requests and print the result.

Example:
  spice run rc.yaml
  spice run rc.yaml --format json --plot rc.png --signal "V(out)"`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Plot, "plot", "", "write a waveform plot (png, svg, pdf) of a transient run")
	cmd.Flags().StringSliceVar(&opts.Signals, "signal", nil, "signals to plot, e.g. V(out) (default all nodes)")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", consts.DefaultMaxSteps, "upper bound on solved time points")
	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "print the first assembled system to stderr")

	return cmd
}

func runDeck(opts *RunOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(cmd, opts.Verbose)

	if _, err := os.Stat(path); err != nil {
		return WrapExitError(ExitCommandError, "cannot open deck", err)
	}

	logger.Info("loading deck", "path", path)
	ckt, err := deck.LoadCircuit(path)
	if err != nil {
		return err
	}

	aopts := analysis.Options{MaxSteps: opts.MaxSteps, Logger: logger}
	if opts.Dump {
		if err := ckt.Validate(); err != nil {
			return err
		}
		solver, err := newDumpSolver(ckt, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer solver.Destroy()
		aopts.Solver = solver
	}

	res, err := analysis.Run(ckt, aopts)
	if err != nil {
		return err
	}

	if err := report.Write(cmd.OutOrStdout(), res, opts.Format); err != nil {
		return WrapExitError(ExitFailure, "failed to write result", err)
	}

	if opts.Plot != "" {
		if res.Mode != circuit.Transient.String() {
			return NewExitError(ExitCommandError, "--plot needs a transient analysis")
		}
		if err := report.SavePlot(res, opts.Plot, opts.Signals...); err != nil {
			return WrapExitError(ExitFailure, "failed to save plot", err)
		}
		logger.Info("plot saved", "path", opts.Plot)
	}
	return nil
}

// dumpSolver prints the first system it solves, then behaves like the
// sparse matrix it wraps.
type dumpSolver struct {
	*matrix.CircuitMatrix
	w      io.Writer
	labels []string
	done   bool
}

func newDumpSolver(ckt *circuit.Circuit, w io.Writer) (*dumpSolver, error) {
	asm := mna.NewAssembler(ckt)
	mat, err := matrix.NewMatrix(asm.Size())
	if err != nil {
		return nil, err
	}
	return &dumpSolver{CircuitMatrix: mat, w: w, labels: asm.Labels(ckt)}, nil
}

func (s *dumpSolver) SolveSystem(sys *matrix.Dense) ([]float64, error) {
	if !s.done {
		s.done = true
		sys.PrintSystem(s.w, s.labels)
		fmt.Fprintln(s.w)
	}
	return s.CircuitMatrix.SolveSystem(sys)
}
