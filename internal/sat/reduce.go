package sat

import "sort"

// ReduceDB halves the learnt-clause population, removing the
// lowest-activity clauses first. A clause is never removed if it is
// locked (currently serving as an antecedent) or protected (its LBD is
// at most 2 — a "glue" clause).
func (s *Solver) ReduceDB() {
	if len(s.learnts) == 0 {
		return
	}

	sort.Slice(s.learnts, func(i, j int) bool {
		return s.learnts[i].activity < s.learnts[j].activity
	})

	lim := s.clauseInc / float64(len(s.learnts))

	i, j := 0, 0
	for ; i < len(s.learnts)/2; i++ {
		c := s.learnts[i]
		if c.locked(s) || c.lbd <= 2 {
			s.learnts[j] = c
			j++
		} else {
			c.Delete(s)
		}
	}
	for ; i < len(s.learnts); i++ {
		c := s.learnts[i]
		if !c.locked(s) && c.lbd > 2 && c.activity < lim {
			c.Delete(s)
		} else {
			s.learnts[j] = c
			j++
		}
	}

	s.learnts = s.learnts[:j]
}
