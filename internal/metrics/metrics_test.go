package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arlojansen/cdcl/internal/sat"
)

func TestCollector_ReportsSolverStats(t *testing.T) {
	s := sat.NewDefaultSolver()
	s.AddVariable()
	s.AddClause([]sat.Literal{sat.PositiveLiteral(0)})
	s.Solve()

	c := NewCollector(s)
	ch := make(chan prometheus.Metric, 16)
	c.Collect(ch)
	close(ch)

	var foundConflicts, foundLearnts bool
	for m := range ch {
		switch m.Desc() {
		case c.conflicts:
			foundConflicts = true
		case c.learnts:
			foundLearnts = true
		}
	}
	if !foundConflicts {
		t.Errorf("Collect did not emit the conflicts counter")
	}
	if !foundLearnts {
		t.Errorf("Collect did not emit the learnts gauge")
	}
}

func TestCollector_DescribeMatchesCollect(t *testing.T) {
	s := sat.NewDefaultSolver()
	c := NewCollector(s)

	descCh := make(chan *prometheus.Desc, 16)
	c.Describe(descCh)
	close(descCh)
	var descs []*prometheus.Desc
	for d := range descCh {
		descs = append(descs, d)
	}

	metricCh := make(chan prometheus.Metric, 16)
	c.Collect(metricCh)
	close(metricCh)
	var count int
	for range metricCh {
		count++
	}

	if len(descs) != count {
		t.Errorf("Describe emitted %d descriptors, Collect emitted %d metrics", len(descs), count)
	}
}
