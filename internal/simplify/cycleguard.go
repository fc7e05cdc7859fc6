package simplify

import "symmetrica/internal/kernel"

// cycleGuard tracks the digest of every intermediate form the fixpoint
// loop visits (spec.md §4.5 item 6 / §9's termination note): if the same
// digest recurs, the loop has entered a cycle and must stop, returning
// the smallest-node-count form seen so far rather than looping forever.
type cycleGuard struct {
	s        *kernel.Store
	seenSet  map[kernel.Digest]bool
	best     kernel.ExprId
	bestSize int
}

func newCycleGuard(s *kernel.Store) *cycleGuard {
	return &cycleGuard{s: s, seenSet: make(map[kernel.Digest]bool), best: kernel.Invalid, bestSize: -1}
}

func (g *cycleGuard) seen(id kernel.ExprId) bool {
	return g.seenSet[g.s.Digest(id)]
}

func (g *cycleGuard) record(id kernel.ExprId) {
	g.seenSet[g.s.Digest(id)] = true
	size := subtreeSize(g.s, id)
	if g.bestSize < 0 || size < g.bestSize {
		g.best = id
		g.bestSize = size
	}
}

func (g *cycleGuard) smallest() kernel.ExprId {
	return g.best
}

// subtreeSize counts the distinct nodes reachable from id, used as the
// "node count" metric the cycle guard minimizes over.
func subtreeSize(s *kernel.Store, id kernel.ExprId) int {
	visited := make(map[kernel.ExprId]bool)
	var walk func(kernel.ExprId)
	walk = func(cur kernel.ExprId) {
		if visited[cur] {
			return
		}
		visited[cur] = true
		for _, c := range s.Children(cur) {
			walk(c)
		}
	}
	walk(id)
	return len(visited)
}
