package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	photoviewer "github.com/TommyGymer/LW-Photo-Viewer"
)

var fitCmd = &cobra.Command{
	Use:   "fit [file]",
	Short: "Print the size [file] is drawn at inside a window, keeping its aspect ratio",
	Args:  cobra.ExactArgs(1),
	RunE:  runFit,
}

func init() {
	fitCmd.Flags().Float64("width", 1024, "Available width")
	fitCmd.Flags().Float64("height", 900, "Available height")
	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetFloat64("width")
	height, _ := cmd.Flags().GetFloat64("height")
	if width <= 0 || height <= 0 {
		return errors.Errorf("window size must be positive, got %vx%v", width, height)
	}

	img, err := newLoader(cmd).Load(args[0])
	if err != nil {
		return err
	}

	w, h := photoviewer.FitSize(width, height, float64(img.Width), float64(img.Height))
	fmt.Fprintf(cmd.OutOrStdout(), "%.0fx%.0f\n", w, h)
	return nil
}
