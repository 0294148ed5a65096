package main

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TommyGymer/LW-Photo-Viewer/internal/browse"
)

var nextCmd = &cobra.Command{
	Use:   "next [file]",
	Short: "Decode the file after [file] in its directory and print the path now shown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNavigate(cmd, args[0], browse.Next)
	},
}

var prevCmd = &cobra.Command{
	Use:   "prev [file]",
	Short: "Decode the file before [file] in its directory and print the path now shown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNavigate(cmd, args[0], browse.Prev)
	},
}

func init() {
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
}

// runNavigate prints the path the viewer ends up on. If the sibling cannot
// be decoded, or there is none, the viewer stays on the current file.
func runNavigate(cmd *cobra.Command, current string, d browse.Direction) error {
	shown := current

	sibling, err := browse.Sibling(current, d)
	switch {
	case errors.Is(err, browse.ErrNoSibling):
		log.WithField("path", current).Infof("no %s file", d)
	case err != nil:
		return errors.Wrapf(err, "listing directory of %s", current)
	default:
		if _, err := newLoader(cmd).Load(sibling); err != nil {
			log.WithError(err).WithField("path", sibling).Error("could not decode image")
		} else {
			shown = sibling
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), shown)
	return nil
}
