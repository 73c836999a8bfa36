// Package ingest hands text from concurrent producers to the single goroutine
// that owns a scroll panel.
package ingest

import (
	"sync"
	"time"
)

// DrainWait bounds how long Drain waits for an item it was told is present.
const DrainWait = time.Second

// Queue is an unbounded FIFO safe for many producers and one consumer.
// Enqueue never blocks on the consumer.
type Queue struct {
	mu     sync.Mutex
	items  []string
	closed bool
	notify chan struct{}
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Enqueue appends text to the tail. It is callable from any goroutine and
// returns without waiting for the consumer. Text enqueued after Close is
// dropped.
func (q *Queue) Enqueue(text string) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, text)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Dequeue removes the head item. If the queue is empty it waits up to wait
// for a producer before giving up.
func (q *Queue) Dequeue(wait time.Duration) (string, bool) {
	if text, ok := q.pop(); ok {
		return text, true
	}
	if wait <= 0 {
		return "", false
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	for {
		select {
		case <-q.notify:
			if text, ok := q.pop(); ok {
				return text, true
			}
		case <-timer.C:
			return q.pop()
		}
	}
}

// Drain forwards queued items to into, oldest first, until the queue reports
// empty. It returns the number of items forwarded. Only the consumer may call
// Drain.
func (q *Queue) Drain(into func(string)) int {
	n := 0
	for !q.Empty() {
		text, ok := q.Dequeue(DrainWait)
		if !ok {
			break
		}
		into(text)
		n++
	}
	return n
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Empty reports whether nothing is queued.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}

// Notify returns a channel that receives a value after one or more enqueues.
// Signals coalesce; a receiver should Drain rather than count signals.
func (q *Queue) Notify() <-chan struct{} {
	return q.notify
}

// Close stops accepting new items. Items already queued can still be drained.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

func (q *Queue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return "", false
	}
	text := q.items[0]
	q.items[0] = ""
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return text, true
}
