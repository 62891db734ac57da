package field

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// FrameID identifies a scheduled frame so it can be cancelled.
type FrameID uint64

// FrameCallback receives the host clock at the moment the frame fires.
type FrameCallback func(now time.Duration)

// Scheduler is the host's frame facility: request one callback for the next
// frame, or cancel a pending one. Cancelling an unknown or fired ID is a no-op.
type Scheduler interface {
	RequestFrame(cb FrameCallback) FrameID
	CancelFrame(id FrameID)
}

// Animator runs one Field against one Scheduler. Each frame requests the next;
// Unmount cancels the pending request and stops any in-flight frame from
// rescheduling.
type Animator struct {
	field   *Field
	sched   Scheduler
	acquire func() Surface
	log     *zap.Logger

	mu      sync.Mutex
	handle  FrameID
	pending bool
	mounted bool
}

// NewAnimator binds a field to a scheduler. acquire returns the drawing surface,
// or nil when none is available.
func NewAnimator(f *Field, sched Scheduler, acquire func() Surface, log *zap.Logger) *Animator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Animator{field: f, sched: sched, acquire: acquire, log: log}
}

// Mount starts the loop. It reports false, and schedules nothing, when no
// surface can be acquired.
func (a *Animator) Mount() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mounted {
		return true
	}
	if a.acquire() == nil {
		a.log.Debug("No drawing surface; animation not started")
		return false
	}
	a.mounted = true
	a.handle = a.sched.RequestFrame(a.tick)
	a.pending = true
	a.log.Debug("Animator mounted", zap.Uint64("frame", uint64(a.handle)))
	return true
}

// Unmount cancels the pending frame. No callback does work after it returns.
func (a *Animator) Unmount() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.mounted {
		return
	}
	a.mounted = false
	if a.pending {
		a.sched.CancelFrame(a.handle)
		a.pending = false
	}
	a.log.Debug("Animator unmounted", zap.Uint64("frames", a.field.Stats().Frames))
}

func (a *Animator) Mounted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mounted
}

func (a *Animator) tick(now time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = false
	if !a.mounted {
		return
	}
	if s := a.acquire(); s != nil {
		a.field.Frame(s, now)
	}
	a.handle = a.sched.RequestFrame(a.tick)
	a.pending = true
}

// Do runs fn on the field while holding the frame lock, so input from another
// goroutine never interleaves with a frame.
func (a *Animator) Do(fn func(f *Field)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.field)
}
