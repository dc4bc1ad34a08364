package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/gomeasure/internal/app"
	"github.com/philipparndt/gomeasure/internal/config"
)

var viewConfigPath string

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Open a model in the interactive viewer",
	Long: `Open an STL or OpenSCAD file in a 3D window. D starts a distance
measurement, A an area and G an angle; clicked points on the model form
the measurement. Right click or Enter finishes, Escape cancels, C
restarts the current mode.

OpenSCAD files are rendered through the openscad binary, and the whole
use/include tree is watched so edits re-render the view.`,
	Args: cobra.ExactArgs(1),
	Run:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().StringVar(&viewConfigPath, "config", "",
		"config file (default: nearest gomeasure.yaml upwards from the working directory)")
}

func runView(cmd *cobra.Command, args []string) {
	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := app.Run(args[0], loadConfig(), log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: an explicit --config
// path must load, a discovered file must load, and no file at all
// falls back to the defaults
func loadConfig() *config.Config {
	path := viewConfigPath
	if path == "" {
		found, err := config.Find()
		if err != nil {
			return config.Default()
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
