package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSolver creates a solver with n variables and adds clauses given as
// slices of signed ints, using the usual DIMACS convention (positive k
// means variable k-1 true, negative k means variable k-1 false).
func buildSolver(t *testing.T, n int, clauses [][]int) *Solver {
	t.Helper()
	s := NewDefaultSolver()
	for i := 0; i < n; i++ {
		s.AddVariable()
	}
	for _, cl := range clauses {
		lits := make([]Literal, len(cl))
		for i, k := range cl {
			if k > 0 {
				lits[i] = PositiveLiteral(k - 1)
			} else {
				lits[i] = NegativeLiteral(-k - 1)
			}
		}
		if err := s.AddClause(lits); err != nil {
			t.Fatalf("AddClause(%v): %s", cl, err)
		}
	}
	return s
}

// checkModel verifies that every clause has at least one true literal
// under the given model (model[i] is variable i+1's value).
func checkModel(t *testing.T, clauses [][]int, model []bool) {
	t.Helper()
	for _, cl := range clauses {
		ok := false
		for _, k := range cl {
			v := k
			if v < 0 {
				v = -v
			}
			val := model[v-1]
			if k < 0 {
				val = !val
			}
			if val {
				ok = true
				break
			}
		}
		if !ok {
			t.Errorf("clause %v not satisfied by model %v", cl, model)
		}
	}
}

// A single unit clause forces its own literal true: p cnf 1 1 \n 1 0 ->
// SAT, model {1: true}.
func TestSolve_UnitClause(t *testing.T) {
	clauses := [][]int{{1}}
	s := buildSolver(t, 1, clauses)

	status := s.Solve()
	require.Equal(t, True, status, "Solve() verdict")

	model := s.Models[len(s.Models)-1]
	assert.True(t, model[0], "model[0]")
	checkModel(t, clauses, model)
}

// Two contradicting unit clauses: p cnf 1 2 \n 1 0 \n -1 0 -> UNSAT.
func TestSolve_ContradictingUnits(t *testing.T) {
	s := buildSolver(t, 1, [][]int{{1}, {-1}})
	if got := s.Solve(); got != False {
		t.Fatalf("Solve() = %s, want UNSAT", got)
	}
}

// A chain of implications across three variables: p cnf 3 3 \n 1 2 0 \n
// -1 3 0 \n -2 -3 0 -> SAT.
func TestSolve_Chained(t *testing.T) {
	clauses := [][]int{{1, 2}, {-1, 3}, {-2, -3}}
	s := buildSolver(t, 3, clauses)

	if got := s.Solve(); got != True {
		t.Fatalf("Solve() = %s, want SAT", got)
	}
	checkModel(t, clauses, s.Models[len(s.Models)-1])
}

// p cnf 3 4 \n 1 2 0 \n 1 -2 0 \n -1 3 0 \n -1 -3 0 -> UNSAT.
func TestSolve_Unsat(t *testing.T) {
	s := buildSolver(t, 3, [][]int{{1, 2}, {1, -2}, {-1, 3}, {-1, -3}})
	if got := s.Solve(); got != False {
		t.Fatalf("Solve() = %s, want UNSAT", got)
	}
}

// Pigeonhole: 3 pigeons into 2 holes -> UNSAT.
func TestSolve_Pigeonhole(t *testing.T) {
	// Variable x_ij (pigeon i in hole j), i in {1,2,3}, j in {1,2}:
	// var index = (i-1)*2 + j, 1-based.
	v := func(i, j int) int { return (i-1)*2 + j }

	var clauses [][]int
	for i := 1; i <= 3; i++ {
		clauses = append(clauses, []int{v(i, 1), v(i, 2)})
	}
	for j := 1; j <= 2; j++ {
		for i1 := 1; i1 <= 3; i1++ {
			for i2 := i1 + 1; i2 <= 3; i2++ {
				clauses = append(clauses, []int{-v(i1, j), -v(i2, j)})
			}
		}
	}

	s := buildSolver(t, 6, clauses)
	if got := s.Solve(); got != False {
		t.Fatalf("Solve() = %s, want UNSAT", got)
	}
}

// TestSolve_EmptyClause verifies that an empty (size-0) clause makes the
// solver immediately and permanently UNSAT.
func TestSolve_EmptyClause(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()
	if err := s.AddClause(nil); err != nil {
		t.Fatalf("AddClause(nil): %s", err)
	}
	if got := s.Solve(); got != False {
		t.Fatalf("Solve() = %s, want UNSAT", got)
	}
}

// TestSolve_Random3SAT is a small fixed 3-SAT instance (not randomly
// generated at test time, since Date/rand are unavailable at authoring
// time): whichever verdict it returns, if SAT the model must satisfy
// every clause.
func TestSolve_Random3SAT(t *testing.T) {
	clauses := [][]int{
		{1, 2, 3}, {-1, 2, 4}, {1, -2, -4}, {-3, 4, 5},
		{2, -3, 5}, {-2, -5, 1}, {3, -4, -5}, {-1, -2, 3},
		{4, 5, -1}, {-3, -4, 2},
	}
	s := buildSolver(t, 5, clauses)
	got := s.Solve()
	if got == Unknown {
		t.Fatalf("Solve() returned Unknown with no stop condition set")
	}
	if got == True {
		checkModel(t, clauses, s.Models[len(s.Models)-1])
	}
}

// After undoUntil(b) with b from analyze, enqueuing the asserting
// literal must always be valid (variable unassigned) and makes the
// learnt clause unit. This is exercised indirectly through every
// SAT/UNSAT scenario above (Solve would produce a wrong verdict or panic
// via InternalInvariantError otherwise); this case specifically forces
// two conflicts and a non-chronological backjump to level 0.
func TestSolve_BackjumpsToLevelZero(t *testing.T) {
	s := buildSolver(t, 3, [][]int{{1, 2}, {1, -2}, {-1, 3}, {-1, -3}})
	s.Solve()
	if s.TotalConflicts < 2 {
		t.Errorf("expected at least two conflicts (level 1, then level 0 after the backjump), got %d", s.TotalConflicts)
	}
}

// TestAddClause_RejectsMidSearch verifies AddClause's decision-level-0
// precondition: original clauses may only be installed before search
// begins.
func TestAddClause_RejectsMidSearch(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()
	s.AddVariable()
	s.assume(PositiveLiteral(0))
	if err := s.AddClause([]Literal{PositiveLiteral(1)}); err == nil {
		t.Errorf("AddClause at decision level > 0: want error, got nil")
	}
}

func TestEnqueue_Inconsistent(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()
	if !s.enqueue(PositiveLiteral(0), nil) {
		t.Fatalf("first enqueue should succeed")
	}
	if s.enqueue(NegativeLiteral(0), nil) {
		t.Errorf("enqueueing the opposite literal should report inconsistency")
	}
}

func TestEnqueue_DuplicateIsNoOp(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()
	s.enqueue(PositiveLiteral(0), nil)
	trailLen := len(s.trail)
	if !s.enqueue(PositiveLiteral(0), nil) {
		t.Fatalf("re-enqueueing an already-true literal should be a no-op success")
	}
	if len(s.trail) != trailLen {
		t.Errorf("trail grew on a duplicate enqueue: %d -> %d", trailLen, len(s.trail))
	}
}
