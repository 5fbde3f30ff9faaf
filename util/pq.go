package util

import "container/heap"

// PriorityQueue is a min-priority queue over an arbitrary item type keyed by
// an ordered priority. Grounded on the (item, dist) heap the teacher module
// builds ad hoc in algorithm/range_dijkstra.go; here it is generic so every
// Dijkstra variant in this module shares one implementation instead of
// reinventing container/heap boilerplate per call site.
type PriorityQueue[T any, P Ordered] struct {
	h *pqHeap[T, P]
}

type Ordered interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

func NewPriorityQueue[T any, P Ordered](capacity int) PriorityQueue[T, P] {
	h := &pqHeap[T, P]{items: make([]pqEntry[T, P], 0, capacity)}
	heap.Init(h)
	return PriorityQueue[T, P]{h: h}
}

func (q PriorityQueue[T, P]) Enqueue(item T, priority P) {
	heap.Push(q.h, pqEntry[T, P]{item: item, priority: priority})
}

func (q PriorityQueue[T, P]) Dequeue() (T, bool) {
	if q.h.Len() == 0 {
		var zero T
		return zero, false
	}
	e := heap.Pop(q.h).(pqEntry[T, P])
	return e.item, true
}

func (q PriorityQueue[T, P]) Len() int {
	return q.h.Len()
}

type pqEntry[T any, P Ordered] struct {
	item     T
	priority P
}

type pqHeap[T any, P Ordered] struct {
	items []pqEntry[T, P]
}

func (h *pqHeap[T, P]) Len() int { return len(h.items) }
func (h *pqHeap[T, P]) Less(i, j int) bool {
	return h.items[i].priority < h.items[j].priority
}
func (h *pqHeap[T, P]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}
func (h *pqHeap[T, P]) Push(x any) {
	h.items = append(h.items, x.(pqEntry[T, P]))
}
func (h *pqHeap[T, P]) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}
