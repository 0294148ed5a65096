package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	photoviewer "github.com/TommyGymer/LW-Photo-Viewer"
)

var rootCmd = &cobra.Command{
	Use:               "lwpv",
	Short:             "Lightweight photo viewer: decode images and step through their directory",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("fold-case", false, "Match file extensions case-insensitively")
	rootCmd.PersistentFlags().Int("workers", 0, "Pixel conversion goroutines (0 = GOMAXPROCS)")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	levelStr, _ := cmd.Flags().GetString("log-level")
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		return errors.Wrapf(err, "invalid --log-level %q", levelStr)
	}
	log.SetLevel(level)
	log.SetOutput(cmd.ErrOrStderr())
	return nil
}

// newLoader builds a loader from the global flags, reporting pipeline
// stages to the standard logger.
func newLoader(cmd *cobra.Command) *photoviewer.Loader {
	foldCase, _ := cmd.Flags().GetBool("fold-case")
	workers, _ := cmd.Flags().GetInt("workers")
	return photoviewer.NewLoader(&photoviewer.Options{
		Workers:  workers,
		FoldCase: foldCase,
		Observer: logObserver(log.StandardLogger()),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
