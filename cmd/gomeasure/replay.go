package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/gomeasure/pkg/script"
)

var replayVerbose bool

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Run a measurement script headlessly",
	Long: `Replay a measurement script against a headless scene and print the
outcome. Scripts load a model or ground plane, orient the camera, open
a measurement mode and click points:

    model "part.stl"
    camera 0.3 0.3 2.0
    open distance
    click 400 300
    click 520 340
    secondary`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVarP(&replayVerbose, "verbose", "v", false, "log session events while replaying")
}

func replayLogger() *zap.Logger {
	if !replayVerbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func runReplay(cmd *cobra.Command, args []string) {
	res, err := script.RunFile(args[0], replayLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Mode:   %s\n", res.Mode)
	fmt.Printf("Points: %d\n", len(res.Points))
	for i, p := range res.Points {
		fmt.Printf("  %d: (%.3f, %.3f, %.3f)\n", i+1, p.X, p.Y, p.Z)
	}
	if res.Completed {
		fmt.Printf("Result: %s\n", res.Formatted)
	} else {
		fmt.Println("Result: not completed")
	}
}
