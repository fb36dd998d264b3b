package gridpath

import "container/heap"

// priorityQueue orders arena indices by f score, then insertion order.
type priorityQueue struct {
	state *searchState
	items []int
}

func (q *priorityQueue) Len() int { return len(q.items) }

func (q *priorityQueue) Less(i, j int) bool {
	a, b := q.state.at(q.items[i]), q.state.at(q.items[j])
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	return a.seq < b.seq
}

func (q *priorityQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.state.at(q.items[i]).heapIndex = i
	q.state.at(q.items[j]).heapIndex = j
}

func (q *priorityQueue) Push(x any) {
	i := x.(int)
	q.state.at(i).heapIndex = len(q.items)
	q.items = append(q.items, i)
}

func (q *priorityQueue) Pop() any {
	n := len(q.items)
	i := q.items[n-1]
	q.items = q.items[:n-1]
	q.state.at(i).heapIndex = -1
	return i
}

// lowestFrontier is the heap-backed frontier with decrease-key.
type lowestFrontier struct {
	state *searchState
	queue priorityQueue
}

func (f *lowestFrontier) insert(i int) {
	r := f.state.at(i)
	r.membership = InFrontier
	r.seq = f.state.nextSeq
	f.state.nextSeq++
	heap.Push(&f.queue, i)
}

func (f *lowestFrontier) remove(i int) {
	if idx := f.state.at(i).heapIndex; idx >= 0 {
		heap.Remove(&f.queue, idx)
	}
}

// promoteIfLower restores heap order after i's score changed.
func (f *lowestFrontier) promoteIfLower(i int) {
	if idx := f.state.at(i).heapIndex; idx >= 0 {
		heap.Fix(&f.queue, idx)
	}
}

func (f *lowestFrontier) peekMin() int { return f.queue.items[0] }

func (f *lowestFrontier) len() int { return f.queue.Len() }

func (f *lowestFrontier) nodes() []int {
	out := make([]int, len(f.queue.items))
	copy(out, f.queue.items)
	return out
}
