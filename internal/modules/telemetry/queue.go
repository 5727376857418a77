// README: Bounded FIFO queue bridging the decision worker and the uplink worker.
package telemetry

import "sync"

// Queue is a fixed-capacity ring of records with its own mutex. Enqueue and
// Dequeue never block; a full queue rejects rather than overwriting. Safe for
// concurrent producers and consumers; the uplink worker re-enqueues failed
// records through the same path, so two enqueue call sites race on it.
type Queue struct {
	mu    sync.Mutex
	items []Record
	front int
	count int
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{items: make([]Record, capacity)}
}

// Enqueue appends rec to the back. Returns false and leaves the queue
// unchanged when full.
func (q *Queue) Enqueue(rec Record) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count >= len(q.items) {
		return false
	}
	q.items[(q.front+q.count)%len(q.items)] = rec
	q.count++
	return true
}

// Dequeue removes and returns the oldest record. The second return value is
// false when the queue is empty.
func (q *Queue) Dequeue() (Record, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return Record{}, false
	}
	rec := q.items[q.front]
	q.front = (q.front + 1) % len(q.items)
	q.count--
	return rec, true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

func (q *Queue) Cap() int {
	return len(q.items)
}
