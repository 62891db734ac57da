// Package audio plays a track through the speaker and measures how loud it is,
// so a field can pulse along with it.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"

	"github.com/iburimskiy/backdrop/internal/config"
)

// ErrUnsupported is returned for files whose extension has no decoder.
var ErrUnsupported = errors.New("unsupported file type")

// Extensions lists the file patterns Decode understands.
var Extensions = []string{"*.wav", "*.mp3", "*.flac"}

// Decode opens path and picks a decoder by extension. Closing the returned
// streamer closes the file.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return streamer, format, nil
}

// Player owns the speaker. It plays one track at a time: streamer -> tap -> ctrl.
type Player struct {
	log   *zap.Logger
	meter *Meter

	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
	track    string
	paused   bool
	initDone bool
}

func NewPlayer(log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		log:   log,
		meter: NewMeter(config.LevelCompress, config.SmoothingFactor),
	}
}

// Load stops whatever is playing and starts path from the beginning.
func (p *Player) Load(path string) error {
	streamer, format, err := Decode(path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	t := NewTap(streamer, config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: t, Paused: false}

	// (Re)initialize speaker if needed
	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("failed to init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("failed to init speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	p.closeLocked()

	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = t
	p.track = filepath.Base(path)
	p.paused = false

	length := format.SampleRate.D(streamer.Len())
	p.log.Info("Playing track",
		zap.String("track", p.track),
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Duration("length", length))

	// The callback runs on the speaker goroutine with the speaker locked;
	// release our resources from a fresh goroutine instead.
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		go p.finished(streamer)
	})))
	return nil
}

func (p *Player) finished(s beep.StreamSeekCloser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer != s {
		return
	}
	p.log.Debug("Track finished", zap.String("track", p.track))
	p.closeLocked()
}

func (p *Player) closeLocked() {
	if p.streamer != nil {
		_ = p.streamer.Close()
	}
	p.streamer = nil
	p.ctrl = nil
	p.tap = nil
	p.track = ""
}

// Level measures the most recent window of played audio. It decays to zero
// when nothing is playing or playback is paused.
func (p *Player) Level() float64 {
	p.mu.Lock()
	tap, paused := p.tap, p.paused
	p.mu.Unlock()

	if tap == nil || paused {
		return p.meter.Update(nil)
	}
	return p.meter.Update(tap.Snapshot(config.LevelWindow))
}

// TogglePause flips playback and reports whether it is now paused.
func (p *Player) TogglePause() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return false
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
	return p.paused
}

// Track is the base name of the playing file, or "" when idle.
func (p *Player) Track() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

// Position reports how far into the track playback is, and its length.
func (p *Player) Position() (elapsed, total time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0, 0
	}
	speaker.Lock()
	pos, n := p.streamer.Position(), p.streamer.Len()
	speaker.Unlock()
	return p.format.SampleRate.D(pos), p.format.SampleRate.D(n)
}

func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Close stops playback and releases the current track.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initDone {
		speaker.Clear()
	}
	p.closeLocked()
}
