package sat

import (
	"context"
	"fmt"
	"time"
)

// Solver is the CDCL engine. It owns the assignment store, trail,
// clause database, watch index, and the heuristics that drive them. A
// Solver must not be used from more than one goroutine at a time and
// none of its operations are reentrant.
type Solver struct {
	// Clause database.
	constraints []*Clause
	learnts     []*Clause
	clauseInc   float64
	clauseDecay float64

	// Variable ordering (VSIDS).
	order       *VarOrder
	varDecay    float64
	phaseSaving bool

	// Restart controller.
	restartPolicy RestartPolicy

	// Propagation and watchers: one watch list per literal.
	watchers  [][]watcher
	propQueue *Queue[Literal]

	assigns []LBool // one per literal index

	trail    []Literal
	trailLim []int
	reason   []*Clause
	level    []int

	unsat bool

	// Search statistics, safe to read after or between Solve calls.
	TotalConflicts  int64
	TotalRestarts   int64
	TotalIterations int64
	startTime       time.Time

	hasStopCond bool
	maxConflict int64
	timeout     time.Duration
	ctx         context.Context

	Verbose bool

	// Models accumulated by repeated Solve calls (e.g. to enumerate all
	// solutions by blocking the last model found).
	Models [][]bool

	seenVar *ResetSet

	tmpWatchers []watcher
	tmpLearnts  []Literal
	tmpReason   []Literal
}

// Options configures a new Solver.
type Options struct {
	ClauseDecay   float64
	VariableDecay float64
	PhaseSaving   bool
	RestartPolicy RestartPolicy // nil selects LubyPolicy{Unit: 100}
	MaxConflicts  int64         // <0 disables the limit
	Timeout       time.Duration // <0 disables the limit
	Verbose       bool
}

// DefaultOptions follows common MiniSat-family tuning: var_decay ≈ 0.95,
// clause_decay 0.999, Luby restarts with unit 100.
var DefaultOptions = Options{
	ClauseDecay:   0.999,
	VariableDecay: 0.95,
	PhaseSaving:   false,
	MaxConflicts:  -1,
	Timeout:       -1,
}

// NewDefaultSolver returns a Solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// NewSolver returns a new, empty Solver (no variables, no clauses).
func NewSolver(opts Options) *Solver {
	s := &Solver{
		clauseDecay: opts.ClauseDecay,
		varDecay:    opts.VariableDecay,
		phaseSaving: opts.PhaseSaving,
		clauseInc:   1,
		propQueue:   NewQueue[Literal](128),
		maxConflict: -1,
		timeout:     -1,
		seenVar:     &ResetSet{},
		Verbose:     opts.Verbose,
		ctx:         context.Background(),
	}

	if opts.RestartPolicy != nil {
		s.restartPolicy = opts.RestartPolicy
	} else {
		s.restartPolicy = &LubyPolicy{Unit: 100}
	}

	if opts.MaxConflicts >= 0 {
		s.hasStopCond = true
		s.maxConflict = opts.MaxConflicts
	}
	if opts.Timeout >= 0 {
		s.hasStopCond = true
		s.timeout = opts.Timeout
	}

	return s
}

// WithContext attaches a cancellation context, polled at the top of the
// search loop: the solver itself never cancels internally, this is
// purely an external yield point.
func (s *Solver) WithContext(ctx context.Context) {
	s.ctx = ctx
}

func (s *Solver) shouldStop() bool {
	if s.ctx != nil {
		select {
		case <-s.ctx.Done():
			return true
		default:
		}
	}
	if !s.hasStopCond {
		return false
	}
	if s.maxConflict >= 0 && s.maxConflict <= s.TotalConflicts {
		return true
	}
	if s.timeout >= 0 && s.timeout <= time.Since(s.startTime) {
		return true
	}
	return false
}

func (s *Solver) NumVariables() int   { return len(s.assigns) / 2 }
func (s *Solver) NumConstraints() int { return len(s.constraints) }
func (s *Solver) NumLearnts() int     { return len(s.learnts) }

// AddVariable declares one new boolean variable and returns its ID
// (0-based; DIMACS variable k maps to ID k-1, see internal/cnf).
func (s *Solver) AddVariable() int {
	id := s.NumVariables()
	s.watchers = append(s.watchers, nil, nil) // one per literal
	s.reason = append(s.reason, nil)
	s.level = append(s.level, -1)
	s.assigns = append(s.assigns, Unknown, Unknown)
	s.seenVar.Expand()
	return id
}

// AddClause installs an original (non-learnt) clause. It may only be
// called at decision level 0. An empty clause is trivially
// unsatisfiable and makes the solver permanently UNSAT.
func (s *Solver) AddClause(lits []Literal) error {
	if s.decisionLevel() != 0 {
		return fmt.Errorf("sat: AddClause called at decision level %d, must be 0", s.decisionLevel())
	}
	c, ok := NewClause(s, lits, false)
	if c != nil {
		s.constraints = append(s.constraints, c)
	}
	if !ok {
		s.unsat = true
	}
	return nil
}

// Simplify removes clauses already satisfied at the root level. It must
// only be called at decision level 0 with an empty propagation queue.
func (s *Solver) Simplify() bool {
	if s.decisionLevel() != 0 {
		panic(&InternalInvariantError{Detail: "Simplify called above decision level 0"})
	}
	if s.propQueue.Size() != 0 {
		panic(&InternalInvariantError{Detail: "Simplify called with a non-empty propagation queue"})
	}
	if s.unsat || s.Propagate() != nil {
		s.unsat = true
		return false
	}
	s.simplifySlice(&s.learnts)
	s.simplifySlice(&s.constraints)
	return true
}

func (s *Solver) simplifySlice(clausesPtr *[]*Clause) {
	clauses := *clausesPtr
	j := 0
	for i := 0; i < len(clauses); i++ {
		if clauses[i].Simplify(s) {
			clauses[i].Delete(s)
		} else {
			clauses[j] = clauses[i]
			j++
		}
	}
	*clausesPtr = clauses[:j]
}

// BumpClaActivity rewards a learnt clause for having been involved in a
// conflict, with the same periodic rescaling VSIDS uses for variables.
func (s *Solver) BumpClaActivity(c *Clause) {
	c.activity += s.clauseInc
	if c.activity > 1e100 {
		s.clauseInc *= 1e-100
		for _, l := range s.learnts {
			l.activity *= 1e-100
		}
	}
}

// DecayClaActivity implements exponential decay of learnt-clause
// activity the same way VSIDS decays variable activity (VarOrder.DecayScores):
// growing the increment rather than touching every clause, so that more
// recently bumped clauses end up with proportionally higher activity.
func (s *Solver) DecayClaActivity() { s.clauseInc /= s.clauseDecay }

// record installs a newly learnt clause and immediately enqueues its
// asserting literal, which analyze guarantees is unit after the
// preceding undoUntil.
func (s *Solver) record(lits []Literal) {
	c, ok := NewClause(s, lits, true)
	if !ok {
		s.unsat = true
		return
	}
	s.enqueue(lits[0], c)
	if c != nil {
		s.learnts = append(s.learnts, c)
	}
}

// Solve runs the search loop to completion (SAT or UNSAT), restarting as
// scheduled by the solver's RestartPolicy, and reduces the learnt
// database periodically. It returns True, False, or (only if a stop
// condition fires) Unknown.
func (s *Solver) Solve() LBool {
	if s.order == nil {
		s.order = NewVarOrder(s.varDecay, s.phaseSaving)
		for v := 0; v < s.NumVariables(); v++ {
			s.order.AddVar(0, true)
		}
	}

	numLearntsLim := s.NumConstraints()/3 + 1
	s.startTime = time.Now()

	if s.Verbose {
		s.printSeparator()
		s.printSearchHeader()
		s.printSeparator()
	}

	status := Unknown
	for status == Unknown {
		budget := s.restartPolicy.NextBudget()
		status = s.search(budget, numLearntsLim)
		numLearntsLim += numLearntsLim / 20

		if s.shouldStop() {
			break
		}
	}

	if s.Verbose {
		s.printSearchStats()
		s.printSeparator()
	}

	s.undoUntil(0)
	return status
}

// search runs propagate/analyze/decide until the conflict budget for
// this restart burst is exhausted, or the problem is decided.
func (s *Solver) search(conflictBudget int, numLearntsLim int) LBool {
	if s.unsat {
		return False
	}

	s.TotalRestarts++
	conflicts := 0

	for !s.shouldStop() {
		s.TotalIterations++
		if s.Verbose && s.TotalIterations%10000 == 0 {
			s.printSearchStats()
		}

		if conflict := s.Propagate(); conflict != nil {
			conflicts++
			s.TotalConflicts++

			if s.decisionLevel() == 0 {
				s.unsat = true
				return False
			}

			learnt, backjumpLevel := s.analyze(conflict)
			s.undoUntil(backjumpLevel)
			s.record(learnt)

			s.DecayClaActivity()
			s.order.DecayScores()
			continue
		}

		// No conflict.
		if s.decisionLevel() == 0 {
			s.Simplify()
		}
		if len(s.learnts)-s.NumAssigns() >= numLearntsLim {
			s.ReduceDB()
		}

		if s.NumAssigns() == s.NumVariables() {
			s.saveModel()
			s.undoUntil(0)
			return True
		}
		if conflicts > conflictBudget {
			s.undoUntil(0)
			return Unknown
		}

		// Every variable is assigned would have been caught above, so
		// NextDecision is guaranteed to find one.
		lit, ok := s.order.NextDecision(s)
		if !ok {
			panic(&InternalInvariantError{Detail: "no decision available despite unassigned variables remaining"})
		}
		s.assume(lit)
	}

	return Unknown
}

func (s *Solver) saveModel() {
	model := make([]bool, s.NumVariables())
	for v := range model {
		lb := s.VarValue(v)
		if lb == Unknown {
			panic(&InternalInvariantError{Detail: "saveModel called with an unassigned variable"})
		}
		model[v] = lb == True
	}
	s.Models = append(s.Models, model)
}

func (s *Solver) printSeparator() {
	fmt.Println("c ---------------------------------------------------------------------------")
}

func (s *Solver) printSearchHeader() {
	fmt.Println("c            time     iterations      conflicts       restarts        learnts")
}

func (s *Solver) printSearchStats() {
	fmt.Printf(
		"c %14.3fs %14d %14d %14d %14d\n",
		time.Since(s.startTime).Seconds(),
		s.TotalIterations,
		s.TotalConflicts,
		s.TotalRestarts,
		len(s.learnts))
}
