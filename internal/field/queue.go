package field

import (
	"sync"
	"time"
)

type frameRequest struct {
	id FrameID
	cb FrameCallback
}

// FrameQueue is a Scheduler whose frames fire when the host calls Fire, once
// per display refresh. Callbacks run outside the queue's lock, so they may
// request or cancel frames freely; frames they request wait for the next Fire.
type FrameQueue struct {
	mu      sync.Mutex
	next    FrameID
	pending []frameRequest
}

func (q *FrameQueue) RequestFrame(cb FrameCallback) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending = append(q.pending, frameRequest{id: q.next, cb: cb})
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending reports how many frames are waiting to fire.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Fire runs every frame pending at the time of the call and reports how many ran.
func (q *FrameQueue) Fire(now time.Duration) int {
	q.mu.Lock()
	due := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, r := range due {
		r.cb(now)
	}
	return len(due)
}
