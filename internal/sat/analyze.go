package sat

// explain fills s.tmpReason with the negated reason literals for why l
// was forced (or, if l has the sentinel value noLiteral, why confl is a
// conflict) and returns it. It also bumps confl's clause activity if
// learnt, rewarding clauses that help explain a conflict, a convention
// used throughout the CDCL literature.
func (s *Solver) explain(confl *Clause, l Literal) []Literal {
	if l == noLiteral {
		confl.explainFailure(s, &s.tmpReason)
	} else {
		confl.explainAssign(s, &s.tmpReason)
	}
	return s.tmpReason
}

// noLiteral is the sentinel used in analyze to mean "we are explaining
// the conflict itself, not a forced assignment".
const noLiteral Literal = -1

// analyze implements First-UIP conflict analysis. It never mutates the
// trail: the backward walk uses a local scratch index (nextLiteral),
// not the trail's length, so a learnt clause that is itself recorded
// and propagated mid-analysis cannot corrupt the walk in progress. It
// returns the learnt clause (asserting literal first) and the backjump
// level.
func (s *Solver) analyze(confl *Clause) ([]Literal, int) {
	// Number of literals at the current decision level not yet resolved
	// away. Reaching zero means the remaining marked literal is the
	// First UIP.
	pending := 0

	s.tmpLearnts = s.tmpLearnts[:0]
	s.tmpLearnts = append(s.tmpLearnts, noLiteral) // reserved for the FUIP

	nextLiteral := len(s.trail) - 1
	l := noLiteral
	s.seenVar.Clear()
	backjumpLevel := 0

	for {
		for _, q := range s.explain(confl, l) {
			v := q.VarID()
			if s.seenVar.Contains(v) {
				continue
			}
			s.seenVar.Add(v)

			if s.level[v] == 0 {
				continue // level-0 facts are permanent, omit them
			}
			s.order.BumpScore(v)

			if s.level[v] == s.decisionLevel() {
				pending++
				continue
			}
			s.tmpLearnts = append(s.tmpLearnts, q.Opposite())
			if s.level[v] > backjumpLevel {
				backjumpLevel = s.level[v]
			}
		}

		// Advance to the next marked trail entry.
		var v int
		for {
			l = s.trail[nextLiteral]
			nextLiteral--
			v = l.VarID()
			if s.seenVar.Contains(v) {
				break
			}
		}

		confl = s.reason[v]
		pending--
		if pending <= 0 {
			break
		}
		if confl == nil {
			// The marked variable is a decision with pending > 0: by
			// construction of CDCL this cannot happen for a well-formed
			// trail/antecedent structure.
			panic(&InternalInvariantError{Detail: "pivot variable has no antecedent before reaching the First UIP"})
		}
	}

	s.tmpLearnts[0] = l.Opposite()
	return s.tmpLearnts, backjumpLevel
}
