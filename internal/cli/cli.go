// Package cli wires the cobra command line for the solver: flags map
// onto sat.Options, driving CNF Loader -> Solver -> Result Reporter, and
// setting the process exit code using the DIMACS convention (10 SAT, 20
// UNSAT).
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"

	"github.com/arlojansen/cdcl/internal/cnf"
	"github.com/arlojansen/cdcl/internal/metrics"
	"github.com/arlojansen/cdcl/internal/report"
	"github.com/arlojansen/cdcl/internal/sat"
)

// flags holds the values bound to the root command.
type flags struct {
	gzipped      bool
	verbose      bool
	phaseSaving  bool
	restartKind  string
	maxConflicts int64
	timeout      time.Duration
	varDecay     float64
	clauseDecay  float64
	modelOut     string
	metricsAddr  string
	cpuProfile   string
	memProfile   string
}

// NewRootCommand builds the "cdcl" root cobra.Command. exitCode receives
// the DIMACS-convention verdict code (10 SAT, 20 UNSAT, 0 unknown) once
// RunE completes successfully; it is left untouched on error.
func NewRootCommand(exitCode *int) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "cdcl [instance.cnf]",
		Short: "Solve a DIMACS CNF instance with a CDCL SAT solver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := run(cmd, args[0], f)
			if err != nil {
				return err
			}
			*exitCode = code
			return nil
		},
	}

	fs := cmd.Flags()
	fs.BoolVar(&f.gzipped, "gzip", false, "treat the instance file as gzip-compressed")
	fs.BoolVar(&f.verbose, "verbose", false, "print periodic search statistics")
	fs.BoolVar(&f.phaseSaving, "phase-saving", false, "cache and reuse each variable's last assigned polarity")
	fs.StringVar(&f.restartKind, "restart-policy", "luby", "restart schedule: \"luby\" or \"geometric\"")
	fs.Int64Var(&f.maxConflicts, "max-conflicts", -1, "stop after this many conflicts (-1 disables the limit)")
	fs.DurationVar(&f.timeout, "timeout", -1, "stop after this much wall-clock time (-1 disables the limit)")
	fs.Float64Var(&f.varDecay, "var-decay", sat.DefaultOptions.VariableDecay, "VSIDS score decay factor")
	fs.Float64Var(&f.clauseDecay, "clause-decay", sat.DefaultOptions.ClauseDecay, "learnt clause activity decay factor")
	fs.StringVar(&f.modelOut, "model-out", "", "write the model (if SAT) to this file in DIMACS v-line form")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics at this address while solving")
	fs.StringVar(&f.cpuProfile, "cpuprofile", "", "write a pprof CPU profile to this file")
	fs.StringVar(&f.memProfile, "memprofile", "", "write a pprof heap profile to this file")

	return cmd
}

// Execute runs the root command against os.Args and returns an exit
// code suitable for os.Exit.
func Execute() int {
	var code int
	cmd := NewRootCommand(&code)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return code
}

func restartPolicy(kind string) (sat.RestartPolicy, error) {
	switch kind {
	case "", "luby":
		return &sat.LubyPolicy{Unit: 100}, nil
	case "geometric":
		return &sat.GeometricPolicy{Base: 100, Factor: 1.5}, nil
	default:
		return nil, fmt.Errorf("unknown restart policy %q, want \"luby\" or \"geometric\"", kind)
	}
}

func run(cmd *cobra.Command, path string, f *flags) (int, error) {
	rp, err := restartPolicy(f.restartKind)
	if err != nil {
		return 0, err
	}

	if f.cpuProfile != "" {
		pf, err := os.Create(f.cpuProfile)
		if err != nil {
			return 0, &sat.IOError{Path: f.cpuProfile, Err: err}
		}
		defer pf.Close()
		if err := pprof.StartCPUProfile(pf); err != nil {
			return 0, err
		}
		defer pprof.StopCPUProfile()
	}

	s := sat.NewSolver(sat.Options{
		ClauseDecay:   f.clauseDecay,
		VariableDecay: f.varDecay,
		PhaseSaving:   f.phaseSaving,
		RestartPolicy: rp,
		MaxConflicts:  f.maxConflicts,
		Timeout:       f.timeout,
		Verbose:       f.verbose,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	s.WithContext(ctx)

	stats, err := cnf.Load(path, f.gzipped, s)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "c variables:  %d\n", stats.Variables)
	fmt.Fprintf(cmd.OutOrStdout(), "c clauses:    %d\n", stats.Clauses)

	if f.metricsAddr != "" {
		coll := metrics.NewCollector(s)
		go func() {
			_ = metrics.Serve(f.metricsAddr, coll)
		}()
	}

	start := time.Now()
	status := s.Solve()
	elapsed := time.Since(start)

	report.Summary(cmd.OutOrStdout(), s, status, elapsed)

	if status == sat.True && f.modelOut != "" {
		out, err := os.Create(f.modelOut)
		if err != nil {
			return 0, &sat.IOError{Path: f.modelOut, Err: err}
		}
		defer out.Close()
		if err := cnf.WriteModel(out, s.Models[len(s.Models)-1]); err != nil {
			return 0, err
		}
	}

	if f.memProfile != "" {
		mf, err := os.Create(f.memProfile)
		if err != nil {
			return 0, &sat.IOError{Path: f.memProfile, Err: err}
		}
		defer mf.Close()
		if err := pprof.WriteHeapProfile(mf); err != nil {
			return 0, err
		}
	}

	return report.ExitCode(status), nil
}
