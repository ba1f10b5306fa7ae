// Package schedule runs callbacks after a simulated delay. It replaces
// sleeping inside gameplay code: a callback is queued with a fire time and
// the tick loop drains whatever is due at the head of every tick.
package schedule

import (
	"container/heap"
	"time"

	"github.com/yohamta/donburi"
)

type item struct {
	at        time.Duration
	seq       uint64
	owner     donburi.Entity
	fn        func()
	cancelled bool
}

type itemHeap []*item

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x any)   { *h = append(*h, x.(*item)) }
func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

// Queue is a min-heap of delayed callbacks keyed by simulated time. It is not
// safe for concurrent use; it belongs to the tick goroutine.
type Queue struct {
	now     time.Duration
	seq     uint64
	items   itemHeap
	byOwner map[donburi.Entity][]*item
}

func NewQueue() *Queue {
	return &Queue{byOwner: make(map[donburi.Entity][]*item)}
}

// Now is the simulated time reached by the last Advance.
func (q *Queue) Now() time.Duration {
	return q.now
}

// Len counts queued callbacks, cancelled ones included until they are popped.
func (q *Queue) Len() int {
	return len(q.items)
}

// ScheduleAfter queues fn to run d after the current simulated time. A
// negative delay is treated as zero; the callback still waits for the next
// Advance. Callbacks due at the same time run in the order they were queued.
func (q *Queue) ScheduleAfter(owner donburi.Entity, d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	q.seq++
	it := &item{at: q.now + d, seq: q.seq, owner: owner, fn: fn}
	heap.Push(&q.items, it)
	q.byOwner[owner] = append(q.byOwner[owner], it)
}

// CancelAll drops every pending callback queued for owner and reports how
// many were dropped.
func (q *Queue) CancelAll(owner donburi.Entity) int {
	pending := q.byOwner[owner]
	delete(q.byOwner, owner)
	n := 0
	for _, it := range pending {
		if !it.cancelled {
			it.cancelled = true
			n++
		}
	}
	return n
}

// Advance moves simulated time forward by dt and runs every callback that is
// due, in fire time order. Callbacks queued while draining run on a later
// Advance even when their delay is zero.
func (q *Queue) Advance(dt time.Duration) {
	if dt > 0 {
		q.now += dt
	}
	limit := q.seq
	for len(q.items) > 0 {
		top := q.items[0]
		// Anything queued during this drain fires at or after now with a
		// larger sequence, so it always sorts behind the older due items.
		if top.at > q.now || top.seq > limit {
			break
		}
		heap.Pop(&q.items)
		q.forget(top)
		if top.cancelled {
			continue
		}
		top.cancelled = true
		top.fn()
	}
}

func (q *Queue) forget(it *item) {
	pending := q.byOwner[it.owner]
	for i, p := range pending {
		if p == it {
			pending = append(pending[:i], pending[i+1:]...)
			break
		}
	}
	if len(pending) == 0 {
		delete(q.byOwner, it.owner)
		return
	}
	q.byOwner[it.owner] = pending
}
