//go:build clausepool

package sat

import (
	"math/bits"
	"sync"
)

// Number of slice pools.
const nPools = 4

// The minimum capacity served by the last pool.
const lastCapa = 1 << nPools

// pools[i] holds slices with capacity in [2^(i+1), 2^(i+2)-1], except the
// last pool which holds slices with capacity at least 2^(nPools).
var pools [nPools]sync.Pool

func init() {
	for i := 0; i < nPools; i++ {
		capa := 1 << (i + 1)
		pools[i].New = func() any {
			s := make([]Literal, 0, capa)
			return &s
		}
	}
}

// pid returns the index of the pool responsible for slices of the given
// capacity.
func pid(capa int) int {
	if capa >= lastCapa {
		return nPools - 1
	}
	id := bits.Len(uint(capa)) - 2
	if capa < (1 << id) {
		id--
	}
	if id < 0 {
		id = 0
	}
	return id
}

// newLiteralSlice returns a copy of lits backed by a pooled slice.
func newLiteralSlice(lits []Literal) []Literal {
	ref := pools[pid(len(lits))].Get().(*[]Literal)
	s := (*ref)[:0]
	if cap(s) < len(lits) {
		s = make([]Literal, 0, len(lits))
	}
	s = append(s, lits...)
	return s
}

// freeSlice returns s's backing array to its pool for reuse.
func freeSlice(s *[]Literal) {
	if *s == nil {
		return
	}
	reset := (*s)[:0]
	pools[pid(cap(reset))].Put(&reset)
}
