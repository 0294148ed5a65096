package main

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]...",
	Short: "Decode images and report their size",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	loader := newLoader(cmd)

	failed := 0
	for _, path := range args {
		img, err := loader.Load(path)
		if err != nil {
			log.WithError(err).WithField("path", path).Error("could not decode image")
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%dx%d\n", path, img.Width, img.Height)
	}

	if failed > 0 {
		return errors.Errorf("%d of %d files failed to decode", failed, len(args))
	}
	return nil
}
