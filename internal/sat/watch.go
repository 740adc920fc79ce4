package sat

// watcher is a clause attached to the watch list of one literal.
type watcher struct {
	clause *Clause

	// guard is one of the clause's literals, different from the watched
	// one. If it is already true, the clause need not be examined at
	// all — this is a pure performance shortcut (it changes propagation
	// order, and so which conflict is eventually reported, but never
	// correctness).
	guard Literal
}

// Watch registers c to be woken up when watch is assigned true.
func (s *Solver) Watch(c *Clause, watch Literal, guard Literal) {
	s.watchers[watch] = append(s.watchers[watch], watcher{clause: c, guard: guard})
}

// Unwatch removes c from watch's watch list (swap-with-last, unordered).
func (s *Solver) Unwatch(c *Clause, watch Literal) {
	ws := s.watchers[watch]
	for i, w := range ws {
		if w.clause == c {
			last := len(ws) - 1
			ws[i] = ws[last]
			s.watchers[watch] = ws[:last]
			return
		}
	}
}
