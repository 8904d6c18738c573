package search

import "grid-planner/internal/grid"

// entry is one frontier record. A cell may have several entries at once;
// only the first one popped is expanded and later ones are stale.
type entry struct {
	cell grid.Coord
	f    float64
	seq  int // insertion order, breaks f ties first-in first-out
}

// frontier implements heap.Interface as a min-heap on f
type frontier []entry

func (pq frontier) Len() int { return len(pq) }

func (pq frontier) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq frontier) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *frontier) Push(x any) {
	*pq = append(*pq, x.(entry))
}

func (pq *frontier) Pop() any {
	old := *pq
	n := len(old)
	e := old[n-1]
	*pq = old[:n-1]
	return e
}
