package app

import (
	"fmt"
	"io"
	"os"

	"github.com/havokentity/steamicons/internal/steam"
	"github.com/spf13/cobra"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Download icons for every installed game",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}

		if !reportInstalled(os.Stdout, e.installed) {
			return nil
		}
		return finishRun(cmd.Context(), e, e.installed)
	},
}

// reportInstalled prints the installed-game count and reports whether the
// run has anything to do. An empty library ends the run right away.
func reportInstalled(w io.Writer, games []steam.Game) bool {
	if len(games) == 0 {
		fmt.Fprintln(w, "No Steam games found in your local libraries")
		return false
	}
	fmt.Fprintf(w, "Total games installed: %d\n", len(games))
	return true
}
