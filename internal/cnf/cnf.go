// Package cnf loads DIMACS CNF instances (optionally gzip-compressed)
// into a sat.Solver, and writes models back out in the same convention.
package cnf

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/arlojansen/cdcl/internal/sat"
)

// Stats reports the size of a loaded instance, read off the DIMACS
// problem line before any clauses are added to the solver.
type Stats struct {
	Variables int
	Clauses   int
}

func reader(path string, gzipped bool) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &sat.IOError{Path: path, Err: err}
	}
	rc := io.ReadCloser(f)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			f.Close()
			return nil, &sat.FormatError{Path: path, Reason: fmt.Sprintf("not a valid gzip stream: %s", err)}
		}
	}
	return rc, nil
}

// Load parses the DIMACS CNF file at path and installs its variables and
// clauses into s. gzipped selects transparent gzip decompression. A
// clause that reduces to empty after loading does not surface as an
// error here: it is recorded as the solver becoming unsatisfiable,
// discoverable via s.Solve()'s return value.
func Load(path string, gzipped bool, s *sat.Solver) (Stats, error) {
	rc, err := reader(path, gzipped)
	if err != nil {
		return Stats{}, err
	}
	defer rc.Close()

	b := &builder{solver: s}
	if err := dimacs.ReadBuilder(rc, b); err != nil {
		return Stats{}, &sat.FormatError{Path: path, Reason: err.Error()}
	}
	return b.stats, nil
}

// builder adapts a sat.Solver to the dimacs.Builder callback interface.
type builder struct {
	solver *sat.Solver
	stats  Stats
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("unsupported problem type %q, want \"cnf\"", problem)
	}
	b.stats = Stats{Variables: nVars, Clauses: nClauses}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmp []int) error {
	lits := make([]sat.Literal, len(tmp))
	for i, l := range tmp {
		switch {
		case l == 0:
			return fmt.Errorf("literal 0 is not a valid variable reference")
		case l > b.stats.Variables || -l > b.stats.Variables:
			return fmt.Errorf("literal %d outside [-%d, %d]", l, b.stats.Variables, b.stats.Variables)
		case l < 0:
			lits[i] = sat.NegativeLiteral(-l - 1)
		default:
			lits[i] = sat.PositiveLiteral(l - 1)
		}
	}
	return b.solver.AddClause(lits)
}

func (b *builder) Comment(string) error {
	return nil
}

// WriteModel writes model to w using the DIMACS "v" convention: one
// line per literal (positive for true, negative for false), terminated
// by a trailing "0", matching the format other SAT tooling expects.
func WriteModel(w io.Writer, model []bool) error {
	for i, v := range model {
		sign := "-"
		if v {
			sign = ""
		}
		if _, err := fmt.Fprintf(w, "v %s%d\n", sign, i+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "v 0")
	return err
}
