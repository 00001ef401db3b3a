package astar

import "container/heap"

// frontier is a min-heap of candidate stations ordered by estimated total
// cost, ties broken by insertion order so expansion stays deterministic.
// Decrease-key is lazy: a cheaper re-push shadows the stale entry, which
// the search later discards against its closed set.
type frontier struct {
	items []frontierItem
	seq   int
}

type frontierItem struct {
	station string
	f       float64
	seq     int
}

func newFrontier() *frontier { return &frontier{} }

func (fr *frontier) add(station string, f float64) {
	fr.seq++
	heap.Push(fr, frontierItem{station: station, f: f, seq: fr.seq})
}

func (fr *frontier) next() string {
	return heap.Pop(fr).(frontierItem).station
}

func (fr *frontier) Len() int { return len(fr.items) }

func (fr *frontier) Less(i, j int) bool {
	if fr.items[i].f != fr.items[j].f {
		return fr.items[i].f < fr.items[j].f
	}
	return fr.items[i].seq < fr.items[j].seq
}

func (fr *frontier) Swap(i, j int) {
	fr.items[i], fr.items[j] = fr.items[j], fr.items[i]
}

func (fr *frontier) Push(x any) {
	fr.items = append(fr.items, x.(frontierItem))
}

func (fr *frontier) Pop() any {
	old := fr.items
	n := len(old)
	item := old[n-1]
	fr.items = old[:n-1]
	return item
}
