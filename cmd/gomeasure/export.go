package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomeasure/pkg/export"
	"github.com/philipparndt/gomeasure/pkg/script"
)

var (
	exportOut    string
	exportWidth  float64
	exportHeight float64
)

var exportCmd = &cobra.Command{
	Use:   "export <script>",
	Short: "Replay a script and export the measured scene",
	Long: `Replay a measurement script headlessly and write the resulting scene
to a file. The format follows the output extension: .svg, .pdf or .png.`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (.svg, .pdf or .png)")
	exportCmd.MarkFlagRequired("output")
	exportCmd.Flags().Float64Var(&exportWidth, "width", 800, "output width in pixels")
	exportCmd.Flags().Float64Var(&exportHeight, "height", 600, "output height in pixels")
	exportCmd.Flags().BoolVarP(&replayVerbose, "verbose", "v", false, "log session events while replaying")
}

func runExport(cmd *cobra.Command, args []string) {
	res, err := script.RunFile(args[0], replayLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := export.Write(exportOut, res.World, res.Camera, exportWidth, exportHeight); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", exportOut)
}
