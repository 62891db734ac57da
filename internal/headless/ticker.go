// Package headless runs fields without a window: a ticker stands in for the
// display refresh and a Recorder stands in for the canvas.
package headless

import (
	"context"
	"time"

	"github.com/iburimskiy/backdrop/internal/field"
)

// Ticker is a field.Scheduler that fires pending frames on a fixed interval
// from its own goroutine.
type Ticker struct {
	*field.FrameQueue

	interval time.Duration
	start    time.Time
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewTicker starts a ticker that stops when ctx is cancelled or Stop is called.
func NewTicker(ctx context.Context, interval time.Duration) *Ticker {
	ctx, cancel := context.WithCancel(ctx)
	t := &Ticker{
		FrameQueue: &field.FrameQueue{},
		interval:   interval,
		start:      time.Now(),
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	go t.run(ctx)
	return t
}

func (t *Ticker) run(ctx context.Context) {
	defer close(t.done)
	tick := time.NewTicker(t.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			t.Fire(now.Sub(t.start))
		}
	}
}

// Stop halts the ticker and waits for its goroutine to exit.
func (t *Ticker) Stop() {
	t.cancel()
	<-t.done
}
