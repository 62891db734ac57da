package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iburimskiy/backdrop/internal/logging"
)

var (
	// Global flags
	verbose bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "backdrop",
	Short: "Animated particle-field backgrounds",
	Long: `backdrop renders animated particle fields: drifting particles joined by
fading lines, rotating outline shapes, a shimmering grid, and an organic
population that assembles from chaos into grid-aligned growth.

Run without arguments to open the default scene in a window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().StringVarP(&sceneName, "scene", "s", "thinking", "Built-in scene to show")
		cmd.Flags().StringVarP(&sceneFile, "file", "f", "", "Scene YAML file (overrides --scene)")
		cmd.Flags().StringVar(&trackFile, "audio", "", "Audio file to play and pulse along with")
		cmd.MarkFlagsMutuallyExclusive("scene", "file")
	}

	benchCmd.Flags().StringSliceVar(&benchScenes, "scenes", nil, "Scenes to run (default: every preset)")
	benchCmd.Flags().Uint64Var(&benchFrames, "frames", 300, "Frames to draw per scene")
	benchCmd.Flags().IntVar(&benchFPS, "fps", 60, "Frame rate of the simulated display")
	benchCmd.Flags().Float64Var(&benchWidth, "width", 1280, "Canvas width")
	benchCmd.Flags().Float64Var(&benchHeight, "height", 720, "Canvas height")
	benchCmd.Flags().Uint64Var(&benchResizeAt, "resize-at", 0, "Halve the canvas after this many frames (0: never)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
