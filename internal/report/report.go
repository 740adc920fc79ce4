// Package report formats solver results for human consumption: the
// search summary line-format, the model in DIMACS convention, and the
// implication-chain debug output.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/arlojansen/cdcl/internal/sat"
)

// ExitCode maps a solver verdict to the DIMACS-convention process exit
// status: 10 for satisfiable, 20 for unsatisfiable, 0 for an
// inconclusive result (a stop condition fired before a verdict).
func ExitCode(status sat.LBool) int {
	switch status {
	case sat.True:
		return 10
	case sat.False:
		return 20
	default:
		return 0
	}
}

// Summary writes the search statistics block printed after a Solve call,
// independent of the solver's own verbose tracing.
func Summary(w io.Writer, s *sat.Solver, status sat.LBool, elapsed time.Duration) {
	fmt.Fprintf(w, "c variables:  %d\n", s.NumVariables())
	fmt.Fprintf(w, "c constraints: %d\n", s.NumConstraints())
	fmt.Fprintf(w, "c learnts:    %d\n", s.NumLearnts())
	fmt.Fprintf(w, "c conflicts:  %d\n", s.TotalConflicts)
	fmt.Fprintf(w, "c restarts:   %d\n", s.TotalRestarts)
	fmt.Fprintf(w, "c time (sec): %f\n", elapsed.Seconds())
	fmt.Fprintf(w, "s %s\n", dimacsVerdict(status))
}

func dimacsVerdict(status sat.LBool) string {
	switch status {
	case sat.True:
		return "SATISFIABLE"
	case sat.False:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Model writes the satisfying assignment in DIMACS "v" form.
func Model(w io.Writer, model []bool) {
	for i, v := range model {
		if v {
			fmt.Fprintf(w, "v %d\n", i+1)
		} else {
			fmt.Fprintf(w, "v -%d\n", i+1)
		}
	}
	fmt.Fprintln(w, "v 0")
}

// ImplicationChain prints the chain returned by sat.ImplicationChain,
// one line per variable, starting with the explained variable and then
// its causes depth-first in antecedent-clause order, naming every
// literal of the clause that forced it: every predecessor is listed,
// not an arbitrary one.
func ImplicationChain(w io.Writer, chain []sat.ChainStep) {
	for _, step := range chain {
		if step.Antecedent == nil {
			fmt.Fprintf(w, "%d = %t (decision)\n", step.Var, step.Value)
			continue
		}
		fmt.Fprintf(w, "%d = %t  <- %s  (causes: %v)\n", step.Var, step.Value, step.Antecedent, step.Causes)
	}
}
