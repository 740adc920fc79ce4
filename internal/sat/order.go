package sat

import "github.com/rhartert/yagh"

// VarOrder implements VSIDS: it ranks unassigned variables by decayed
// activity and hands out the next branching decision. Ties are broken by
// the order in which variables were declared, since the underlying heap
// is stable on insertion order for equal priorities.
type VarOrder struct {
	// Binary heap mapping variable ID to -activity (a min-heap on
	// negated activity behaves as a max-heap on activity).
	heap *yagh.IntMap[float64]

	scores     []float64 // activity, in [0, 1e100)
	scoreInc   float64   // bump increment, in (0, 1e100)
	scoreDecay float64   // in (0, 1]

	phases      []LBool
	phaseSaving bool
}

// NewVarOrder returns an empty VarOrder. decay is the VSIDS decay factor
// (typically around 0.95); phaseSaving enables caching the last assigned
// polarity per variable.
func NewVarOrder(decay float64, phaseSaving bool) *VarOrder {
	return &VarOrder{
		heap:        yagh.New[float64](0),
		scoreInc:    1,
		scoreDecay:  decay,
		phaseSaving: phaseSaving,
	}
}

// AddVar registers a new variable with the given initial score and phase.
func (vo *VarOrder) AddVar(initScore float64, initPhase bool) {
	v := len(vo.phases)
	vo.scores = append(vo.scores, initScore)
	vo.phases = append(vo.phases, Lift(initPhase))
	vo.heap.GrowBy(1)
	vo.heap.Put(v, -initScore)
}

// Reinsert makes v a candidate for selection again (called when v is
// unassigned, e.g. by a backtrack). val is the value v held just before
// being unassigned, used for phase saving.
func (vo *VarOrder) Reinsert(v int, val LBool) {
	if vo.phaseSaving {
		vo.phases[v] = val
	}
	vo.heap.Put(v, -vo.scores[v])
}

// DecayScores implements exponential decay of every variable's score
// without touching each one: it instead grows the increment applied on
// the next bump.
func (vo *VarOrder) DecayScores() {
	vo.scoreInc /= vo.scoreDecay
	if vo.scoreInc > 1e100 {
		vo.rescale()
	}
}

// BumpScore increases v's activity by the current increment, possibly
// triggering a rescale to avoid floating-point overflow.
func (vo *VarOrder) BumpScore(v int) {
	newScore := vo.scores[v] + vo.scoreInc
	vo.scores[v] = newScore
	if vo.heap.Contains(v) {
		vo.heap.Put(v, -newScore)
	}
	if newScore > 1e100 {
		vo.rescale()
	}
}

// NextDecision pops the unassigned variable with the highest activity
// and returns it as a literal, using the cached phase (or TRUE if phase
// saving is disabled or no phase has been cached yet).
func (vo *VarOrder) NextDecision(s *Solver) (Literal, bool) {
	for {
		next, ok := vo.heap.Pop()
		if !ok {
			return 0, false // every variable is assigned: SAT
		}
		if s.VarValue(next.Elem) != Unknown {
			continue // stale heap entry; lazily dropped
		}
		switch vo.phases[next.Elem] {
		case False:
			return NegativeLiteral(next.Elem), true
		default:
			return PositiveLiteral(next.Elem), true
		}
	}
}

func (vo *VarOrder) rescale() {
	vo.scoreInc *= 1e-100
	for v, sc := range vo.scores {
		newScore := sc * 1e-100
		vo.scores[v] = newScore
		if vo.heap.Contains(v) {
			vo.heap.Put(v, -newScore)
		}
	}
}
