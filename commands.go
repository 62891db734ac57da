package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iburimskiy/backdrop/internal/audio"
	"github.com/iburimskiy/backdrop/internal/config"
	"github.com/iburimskiy/backdrop/internal/game"
	"github.com/iburimskiy/backdrop/internal/headless"
)

var (
	sceneName string
	sceneFile string
	trackFile string

	benchScenes   []string
	benchFrames   uint64
	benchFPS      int
	benchWidth    float64
	benchHeight   float64
	benchResizeAt uint64
)

// runCmd opens a scene in a window
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show a scene in a window",
	Long: `Opens a resizable window and animates the chosen scene.

A scene file only turns on what it names: leave out pointer or connections
and the scene has neither. Start from "backdrop export" to edit a preset.

Keys:
  Space   pause / resume
  S       start the organic formation
  N       next built-in scene
  O       open a scene file
  A       open an audio file
  Esc, Q  quit`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

// benchCmd runs scenes headless
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run scenes without a window and report frame statistics",
	Long: `Runs each scene concurrently against an off-screen canvas driven by a
fixed-rate ticker, then prints what every scene drew.

Example:
  backdrop bench --scenes spark,organic --frames 600 --resize-at 300`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

// presetsCmd lists the built-in scenes
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in scenes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range config.PresetNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

// exportCmd writes a preset to YAML as a starting point for a custom scene
var exportCmd = &cobra.Command{
	Use:   "export [preset] [path]",
	Short: "Write a built-in scene to a YAML file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := config.Preset(args[0])
		if err != nil {
			return err
		}
		if err := scene.Save(args[1]); err != nil {
			return err
		}
		logger.Info("Scene exported", zap.String("scene", scene.Name), zap.String("path", args[1]))
		return nil
	},
}

func loadScene() (config.Scene, error) {
	if sceneFile != "" {
		return config.Load(sceneFile)
	}
	return config.Preset(sceneName)
}

func runWindow(cmd *cobra.Command, args []string) error {
	scene, err := loadScene()
	if err != nil {
		return err
	}

	player := audio.NewPlayer(logger.Named("audio"))
	g, err := game.New(scene, player, logger)
	if err != nil {
		return err
	}
	defer g.Close()

	if trackFile != "" {
		if err := player.Load(trackFile); err != nil {
			return err
		}
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("backdrop - " + scene.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TargetFPS)

	logger.Info("Opening window", zap.String("scene", scene.Name))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchFPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", benchFPS)
	}
	if benchResizeAt > 0 && benchResizeAt >= benchFrames {
		return fmt.Errorf("--resize-at %d must be below --frames %d", benchResizeAt, benchFrames)
	}
	names := benchScenes
	if len(names) == 0 {
		names = config.PresetNames()
	}

	instances := make([]headless.Instance, 0, len(names))
	for _, name := range names {
		scene, err := config.Preset(name)
		if err != nil {
			return err
		}
		instances = append(instances, headless.Instance{Name: scene.Name, Config: scene.Field})
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := headless.Options{
		Frames:   benchFrames,
		Interval: time.Second / time.Duration(benchFPS),
		Width:    benchWidth,
		Height:   benchHeight,
		ResizeAt: benchResizeAt,
		ResizeTo: [2]float64{benchWidth / 2, benchHeight / 2},
	}
	logger.Info("Starting bench",
		zap.Strings("scenes", names),
		zap.Uint64("frames", opts.Frames),
		zap.Duration("interval", opts.Interval))

	results, err := headless.Bench(ctx, instances, opts, logger)
	if err != nil {
		return err
	}
	return printResults(cmd, results)
}

func printResults(cmd *cobra.Command, results []headless.Result) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tFRAMES\tRESETS\tPARTICLES\tSHAPES\tORGANIC\tPRIMITIVES/FRAME\tELAPSED")
	for _, r := range results {
		perFrame := 0.0
		if r.Stats.Frames > 0 {
			perFrame = float64(r.Counts.Total()) / float64(r.Stats.Frames)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%.1f\t%s\n",
			r.Name, r.Stats.Frames, r.Stats.Resets, r.Stats.Particles, r.Stats.Shapes,
			r.Stats.Organic, perFrame, r.Elapsed.Round(time.Millisecond))
	}
	return w.Flush()
}
