// Package game hosts a scene in an ebiten window: the display refresh drives
// the field's frame loop, the cursor drives pointer attraction and an optional
// audio track drives pulse intensity.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/backdrop/internal/audio"
	"github.com/iburimskiy/backdrop/internal/config"
	"github.com/iburimskiy/backdrop/internal/field"
)

const (
	levelBarWidth  = 120
	levelBarHeight = 6
	hueShiftSpeed  = 20 // degrees per second
)

// Game implements ebiten.Game around one mounted field.
type Game struct {
	log    *zap.Logger
	player *audio.Player
	start  time.Time

	scene   config.Scene
	presets []string

	field   *field.Field
	anim    *field.Animator
	queue   *field.FrameQueue
	surface *surface

	paused   bool
	pausedAt time.Duration
	level    float64
	lastErr  error
}

// New builds a host for scene. Nothing is drawn or scheduled until the first
// Draw hands it a screen.
func New(scene config.Scene, player *audio.Player, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if player == nil {
		player = audio.NewPlayer(log)
	}
	g := &Game{
		log:     log,
		player:  player,
		start:   time.Now(),
		presets: config.PresetNames(),
		queue:   &field.FrameQueue{},
		surface: &surface{},
	}
	if err := g.setScene(scene); err != nil {
		return nil, err
	}
	return g, nil
}

// setScene swaps in a new field. The old animator is unmounted first, so its
// pending frame never fires.
func (g *Game) setScene(scene config.Scene) error {
	f, err := field.New(scene.Field, field.WithLogger(g.log.Named(scene.Name)))
	if err != nil {
		return fmt.Errorf("scene %s: %w", scene.Name, err)
	}
	if g.anim != nil {
		g.anim.Unmount()
	}
	g.scene = scene
	g.field = f
	g.surface.bg = scene.Background.NRGBA()
	g.anim = field.NewAnimator(f, g.queue, g.acquire, g.log)
	g.log.Info("Scene loaded", zap.String("scene", scene.Name))
	return nil
}

func (g *Game) acquire() field.Surface {
	if g.surface.img == nil {
		return nil
	}
	return g.surface
}

// Scene is the scene currently shown.
func (g *Game) Scene() config.Scene { return g.scene }

// NextPreset moves to the built-in preset after the current one, wrapping at
// the end. Custom scenes move to the first preset.
func (g *Game) NextPreset() error {
	next := g.presets[0]
	for i, name := range g.presets {
		if name == g.scene.Name {
			next = g.presets[(i+1)%len(g.presets)]
			break
		}
	}
	scene, err := config.Preset(next)
	if err != nil {
		return err
	}
	return g.setScene(scene)
}

func (g *Game) now() time.Duration { return time.Since(g.start) }

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.anim.Do(func(f *field.Field) { f.Start() })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.report(g.NextPreset())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.report(g.openSceneDialog())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.report(g.openAudioDialog())
	}

	g.updatePointer()
	g.level = g.player.Level()
	g.anim.Do(func(f *field.Field) { f.SetLevel(g.level) })
	return nil
}

// updatePointer feeds the cursor to the field. Touch input and a cursor
// outside the window both park the pointer off-canvas.
func (g *Game) updatePointer() {
	w, h := ebiten.WindowSize()
	if g.surface.img != nil {
		b := g.surface.img.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	x, y := ebiten.CursorPosition()
	touching := len(ebiten.AppendTouchIDs(nil)) > 0

	g.anim.Do(func(f *field.Field) {
		if touching || !ebiten.IsFocused() || !cursorInside(x, y, w, h) {
			f.LeavePointer()
			return
		}
		f.MovePointer(float64(x), float64(y))
	})
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.pausedAt = g.now()
		g.anim.Unmount()
	}
	if g.player.Track() != "" && g.player.Paused() != g.paused {
		g.player.TogglePause()
	}
	g.log.Debug("Pause toggled", zap.Bool("paused", g.paused))
}

func (g *Game) report(err error) {
	if err == nil {
		return
	}
	g.lastErr = err
	g.log.Warn("Action failed", zap.Error(err))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.bind(screen)

	if g.paused {
		// The screen is cleared every frame; repaint the frozen state.
		g.anim.Do(func(f *field.Field) { f.Draw(g.surface, g.pausedAt.Seconds()) })
	} else {
		if !g.anim.Mounted() {
			g.anim.Mount()
		}
		g.queue.Fire(g.now())
	}

	g.drawLevel(screen)
	g.drawStatus(screen)
}

// drawLevel shows the audio level as a small bar in the bottom-left corner.
func (g *Game) drawLevel(screen *ebiten.Image) {
	if g.player.Track() == "" {
		return
	}
	b := screen.Bounds()
	x := float32(12)
	y := float32(b.Dy() - 12 - levelBarHeight)

	vector.DrawFilledRect(screen, x, y, levelBarWidth, levelBarHeight, color.RGBA{R: 20, G: 25, B: 35, A: 120}, false)
	hue := g.now().Seconds() * hueShiftSpeed
	r, gv, bv := hsvToRgb(hue, 0.6, 0.8)
	// Meter levels are already in [0, 1].
	fill := float32(g.level * levelBarWidth)
	vector.DrawFilledRect(screen, x, y, fill, levelBarHeight, color.RGBA{R: r, G: gv, B: bv, A: 220}, false)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	status := fmt.Sprintf("%s  %.0f fps", g.scene.Name, ebiten.ActualFPS())
	if track := g.player.Track(); track != "" {
		elapsed, total := g.player.Position()
		status += fmt.Sprintf("  |  %s %s / %s", track, formatDuration(elapsed), formatDuration(total))
	}
	if g.paused {
		status += "  |  Paused"
	}
	status += "\nSpace: pause  S: start  N: next preset  O: open scene  A: open audio  Esc/Q: quit"
	if g.lastErr != nil {
		status += "\nError: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// Layout keeps one logical pixel per window pixel, so a window resize reaches
// the field as a new canvas size on the next frame.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *Game) openSceneDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Scene"),
		zenity.FileFilters{{
			Name:     "Scene",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	scene, err := config.Load(filename)
	if err != nil {
		return err
	}
	return g.setScene(scene)
}

func (g *Game) openAudioDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Extensions,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	if err := g.player.Load(filename); err != nil {
		return err
	}
	if g.paused {
		g.player.TogglePause()
	}
	return nil
}

// Close stops the frame loop and audio.
func (g *Game) Close() {
	g.anim.Unmount()
	g.player.Close()
}
