package app

import (
	"github.com/spf13/cobra"
)

var (
	cfgPath       string
	steamPathFlag string
	dbPath        string

	rootCmd = &cobra.Command{
		Use:   "steamicons [appid...]",
		Short: "Restore missing Steam game icons",
		Long: `steamicons downloads the client icons for installed or specific Steam
games and drops them into Steam's steam/games folder, fixing the blank
shortcut icons that show up after a fresh install or icon cache loss.

Icons resolve through an anonymous appinfo lookup when the metadata
service is reachable, or through SteamCMD otherwise. SteamCMD is
downloaded next to your Steam installation automatically if missing.

Failures are reported at the end of the run together with a ready-to-run
retry command, and recorded locally so 'steamicons retry' can re-run
them without re-typing app IDs.

Examples:
  # Icons for specific games
  steamicons 730 440 570

  # List installed games
  steamicons list

  # Icons for every installed game
  steamicons all

  # Retry whatever failed last run
  steamicons retry`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runFetch(cmd.Context(), args)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: ~/.config/steamicons/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&steamPathFlag, "steam-path", "", "Steam installation directory (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "run history database (default: ~/.steamicons/steamicons.db)")

	rootCmd.SuggestionsMinimumDistance = 2

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(retryCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
