package headless

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iburimskiy/backdrop/internal/field"
)

// Instance is one field to run, under a display name.
type Instance struct {
	Name   string
	Config field.Config
}

// Options controls a bench run.
type Options struct {
	Frames   uint64
	Interval time.Duration
	Width    float64
	Height   float64
	// ResizeAt, when non-zero, resizes every canvas to ResizeTo after that many frames.
	ResizeAt uint64
	ResizeTo [2]float64
}

// Result is what one instance did.
type Result struct {
	Name    string
	Stats   field.Stats
	Counts  Counts
	Elapsed time.Duration
}

// Bench runs every instance concurrently, each with its own ticker, pool and
// recorder, until it has drawn opts.Frames frames.
func Bench(ctx context.Context, instances []Instance, opts Options, log *zap.Logger) ([]Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Frames == 0 {
		return nil, fmt.Errorf("bench: frame count must be positive")
	}
	if opts.ResizeAt > 0 && opts.ResizeAt >= opts.Frames {
		return nil, fmt.Errorf("bench: resize at frame %d never happens in a %d-frame run", opts.ResizeAt, opts.Frames)
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 60
	}

	results := make([]Result, len(instances))
	g, ctx := errgroup.WithContext(ctx)
	for i, inst := range instances {
		i, inst := i, inst
		g.Go(func() error {
			res, err := runOne(ctx, inst, opts, log.Named(inst.Name))
			if err != nil {
				return fmt.Errorf("instance %s: %w", inst.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(ctx context.Context, inst Instance, opts Options, log *zap.Logger) (Result, error) {
	f, err := field.New(inst.Config, field.WithLogger(log))
	if err != nil {
		return Result{}, err
	}
	rec := NewRecorder(opts.Width, opts.Height)
	ticker := NewTicker(ctx, opts.Interval)
	defer ticker.Stop()

	anim := field.NewAnimator(f, ticker, func() field.Surface { return rec }, log)
	start := time.Now()
	if !anim.Mount() {
		return Result{}, fmt.Errorf("no surface")
	}
	defer anim.Unmount()

	poll := time.NewTicker(opts.Interval)
	defer poll.Stop()
	var resizedAt uint64
	for {
		var stats field.Stats
		anim.Do(func(f *field.Field) {
			stats = f.Stats()
			// Resizing under the frame lock guarantees the next frame sees it.
			if opts.ResizeAt > 0 && resizedAt == 0 && stats.Frames >= opts.ResizeAt {
				rec.Resize(opts.ResizeTo[0], opts.ResizeTo[1])
				resizedAt = stats.Frames
			}
		})
		// A pending resize must reach at least one frame before we stop.
		if stats.Frames >= opts.Frames && (opts.ResizeAt == 0 || stats.Frames > resizedAt) {
			anim.Unmount()
			res := Result{Name: inst.Name, Stats: stats, Counts: rec.Counts(), Elapsed: time.Since(start)}
			log.Info("Bench instance finished",
				zap.Uint64("frames", stats.Frames),
				zap.Uint64("resets", stats.Resets),
				zap.Int("particles", stats.Particles),
				zap.Int("primitives", res.Counts.Total()),
				zap.Duration("elapsed", res.Elapsed))
			return res, nil
		}
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-poll.C:
		}
	}
}
