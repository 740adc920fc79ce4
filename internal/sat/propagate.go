package sat

// Propagate runs Boolean Constraint Propagation to fixpoint, or until a
// clause becomes falsified. It consumes literals from the propagation
// queue (in the order they were enqueued), examining the watch list of
// each literal's negation. On conflict, the propagation queue is drained
// (the caller is expected to backjump and will reset it via undoUntil)
// and the falsified clause is returned.
func (s *Solver) Propagate() *Clause {
	for s.propQueue.Size() > 0 {
		l := s.propQueue.Pop()

		ws := s.watchers[l]
		s.tmpWatchers = append(s.tmpWatchers[:0], ws...)
		s.watchers[l] = ws[:0]

		for i, w := range s.tmpWatchers {
			// A true guard literal means the clause is already
			// satisfied without inspecting its body at all. This is a
			// pure performance shortcut; it alters propagation order
			// and so which conflict is reported on ties, never
			// soundness.
			if s.LitValue(w.guard) == True {
				s.watchers[l] = append(s.watchers[l], w)
				continue
			}

			if w.clause.Propagate(s, l) {
				continue
			}

			// w.clause is now a conflict: preserve the watchers we have
			// not examined yet, drop the propagation queue, and report.
			s.watchers[l] = append(s.watchers[l], s.tmpWatchers[i+1:]...)
			s.propQueue.Clear()
			return s.tmpWatchers[i].clause
		}
	}
	return nil
}
