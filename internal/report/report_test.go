package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/arlojansen/cdcl/internal/sat"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		status sat.LBool
		want   int
	}{
		{sat.True, 10},
		{sat.False, 20},
		{sat.Unknown, 0},
	}
	for _, c := range cases {
		if got := ExitCode(c.status); got != c.want {
			t.Errorf("ExitCode(%s) = %d, want %d", c.status, got, c.want)
		}
	}
}

func TestSummary_ReportsVerdict(t *testing.T) {
	s := sat.NewDefaultSolver()
	s.AddVariable()
	s.AddClause([]sat.Literal{sat.PositiveLiteral(0)})

	var buf bytes.Buffer
	Summary(&buf, s, sat.True, 10*time.Millisecond)
	out := buf.String()
	if !strings.Contains(out, "s SATISFIABLE") {
		t.Errorf("Summary output missing verdict line: %q", out)
	}
	if !strings.Contains(out, "c variables:  1") {
		t.Errorf("Summary output missing variable count: %q", out)
	}
}

func TestModel_DIMACSFormat(t *testing.T) {
	var buf bytes.Buffer
	Model(&buf, []bool{true, false})
	want := "v 1\nv -2\nv 0\n"
	if buf.String() != want {
		t.Errorf("Model output = %q, want %q", buf.String(), want)
	}
}

func TestImplicationChain_DecisionHasNoCause(t *testing.T) {
	s := sat.NewDefaultSolver()
	s.AddVariable()
	chain := []sat.ChainStep{{Var: 0, Value: true, Antecedent: nil}}

	var buf bytes.Buffer
	ImplicationChain(&buf, chain)
	if !strings.Contains(buf.String(), "(decision)") {
		t.Errorf("ImplicationChain output = %q, want it to mark the decision variable", buf.String())
	}
}
