package sat

import "strings"

type status uint8

const (
	statusDeleted status = 0b001
	statusLearnt  status = 0b010
)

// Clause is an ordered, duplicate-free, non-tautological (for original
// clauses) sequence of literals. The two watched literals are always
// c.literals[0] and c.literals[1] — this fixed-slot scheme (rather than
// separately tracked watch indices) is the addressing convention this
// engine uses to satisfy the "two watch positions" requirement; the two
// representations are equivalent.
type Clause struct {
	activity float64

	// The clause's literals. Contains at least two literals while the
	// clause is active; nil once the clause has been deleted.
	literals []Literal

	// Position in literals (at least 2) from which the next search for a
	// replacement watch resumes; Propagate resets it to 2 whenever it is
	// not below len(literals), as for a binary clause. Speeds up
	// Propagate by not always rescanning from the start.
	prevPos int

	// Literal Block Distance: the number of distinct decision levels
	// among the clause's literals other than the asserting one
	// (literals[0]), measured when it is learnt. Lower is better; glue
	// clauses (lbd <= 2) are protected from reduce_db.
	lbd uint32

	statusMask status
}

func (c *Clause) isLearnt() bool {
	return c.statusMask&statusLearnt != 0
}

// NewClause validates and installs a clause's watches. For an original
// (non-learnt) clause, it also strips root-level-false literals,
// deduplicates, and detects root-level-true (tautological) clauses. The
// second return value is false only when the clause set became
// unsatisfiable as a direct result of this addition (an empty clause).
func NewClause(s *Solver, tmpLiterals []Literal, learnt bool) (*Clause, bool) {
	size := len(tmpLiterals)

	if !learnt {
		seen := map[Literal]struct{}{}

		for i := size - 1; i >= 0; i-- {
			// If the opposite literal is already in the clause, the
			// clause is a tautology and trivially satisfied.
			if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
				return nil, true
			}

			if _, ok := seen[tmpLiterals[i]]; ok {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}
			seen[tmpLiterals[i]] = struct{}{}

			switch s.LitValue(tmpLiterals[i]) {
			case True:
				return nil, true // already satisfied at the root level
			case False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}

		tmpLiterals = tmpLiterals[:size]
	}

	switch size {
	case 0:
		return nil, false
	case 1:
		// Size-1 clauses install no watch; they unit-propagate directly.
		return nil, s.enqueue(tmpLiterals[0], nil)
	default:
		c := &Clause{
			prevPos:  2,
			literals: newLiteralSlice(tmpLiterals),
		}

		if learnt {
			c.statusMask |= statusLearnt
			// The asserting literal (position 0) is not yet assigned at
			// this point, so its level is excluded from the count.
			c.lbd = computeLBD(s, c.literals[1:])

			// The asserting literal is already at position 0 (callers
			// place it there); the other watch goes to the literal with
			// the highest decision level among the rest, so that the
			// watch invariant holds immediately after the backjump.
			maxLevel := -1
			wl := -1
			for i := 1; i < len(c.literals); i++ {
				if lvl := s.level[c.literals[i].VarID()]; lvl > maxLevel {
					maxLevel = lvl
					wl = i
				}
			}
			c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]
		}

		s.Watch(c, c.literals[0].Opposite(), c.literals[1])
		s.Watch(c, c.literals[1].Opposite(), c.literals[0])

		return c, true
	}
}

// computeLBD returns the number of distinct decision levels among lits.
func computeLBD(s *Solver, lits []Literal) uint32 {
	if len(lits) == 0 {
		return 0
	}
	seen := map[int]struct{}{}
	for _, l := range lits {
		seen[s.level[l.VarID()]] = struct{}{}
	}
	return uint32(len(seen))
}

// locked reports whether c is currently serving as the antecedent of its
// first literal's variable; locked clauses are never removed by
// reduce_db regardless of activity or LBD.
func (c *Clause) locked(s *Solver) bool {
	return s.reason[c.literals[0].VarID()] == c
}

// Delete removes c's watches and releases its literal storage.
func (c *Clause) Delete(s *Solver) {
	c.statusMask |= statusDeleted
	s.Unwatch(c, c.literals[0].Opposite())
	s.Unwatch(c, c.literals[1].Opposite())
	freeSlice(&c.literals)
	c.literals = nil
}

// Simplify drops root-level-false literals and reports whether c is now
// satisfied at the root level (in which case the caller should delete it).
func (c *Clause) Simplify(s *Solver) bool {
	k := 0
	for _, lit := range c.literals {
		switch s.LitValue(lit) {
		case True:
			return true
		case False:
			// discard
		default:
			c.literals[k] = lit
			k++
		}
	}
	c.literals = c.literals[:k]
	return false
}

// Propagate is invoked when l (the opposite of one of c's watches) has
// just been assigned true. It returns false iff c is now a conflict.
func (c *Clause) Propagate(s *Solver, l Literal) bool {
	// Normalize so that c.literals[1] is the triggering watch; this
	// keeps c.literals[0] as the sole candidate for unit assignment.
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], opp
	}

	if s.LitValue(c.literals[0]) == True {
		s.Watch(c, l, c.literals[0])
		return true
	}

	if c.prevPos >= len(c.literals) {
		c.prevPos = 2
	}
	for i, lit := range c.literals[c.prevPos:] {
		if s.LitValue(lit) != False {
			c.prevPos += i
			c.literals[1], c.literals[c.prevPos] = lit, l.Opposite()
			s.Watch(c, lit.Opposite(), c.literals[0])
			return true
		}
	}
	for i, lit := range c.literals[2:c.prevPos] {
		if s.LitValue(lit) != False {
			c.prevPos = i + 2
			c.literals[1], c.literals[c.prevPos] = lit, l.Opposite()
			s.Watch(c, lit.Opposite(), c.literals[0])
			return true
		}
	}

	// No replacement found: literals[1:] are all false, so literals[0]
	// must become true for c to remain satisfiable.
	s.Watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], c)
}

// explainFailure returns c's literals, negated, as the reason c is a
// conflict: every literal of c is false, so each is an implied fact.
func (c *Clause) explainFailure(s *Solver, out *[]Literal) {
	exp := (*out)[:0]
	for _, l := range c.literals {
		exp = append(exp, l.Opposite())
	}
	if c.isLearnt() {
		s.BumpClaActivity(c)
	}
	*out = exp
}

// explainAssign returns the reason c forced its first literal true: the
// negation of every other (false) literal in c.
func (c *Clause) explainAssign(s *Solver, out *[]Literal) {
	exp := (*out)[:0]
	for _, l := range c.literals[1:] {
		exp = append(exp, l.Opposite())
	}
	if c.isLearnt() {
		s.BumpClaActivity(c)
	}
	*out = exp
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	var sb strings.Builder
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
