package app

import (
	"fmt"

	"github.com/havokentity/steamicons/internal/steam"
	"github.com/havokentity/steamicons/internal/store"
	"github.com/spf13/cobra"
)

var retryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Retry the downloads that failed last run",
	Long: `Re-run icon acquisition for every failure recorded by the previous
run, in the order the failures occurred.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := getDBPath()
		if err != nil {
			return err
		}

		db, err := store.New(path)
		if err != nil {
			return fmt.Errorf("failed to open the run history: %w", err)
		}
		if err := db.CreateSchema(); err != nil {
			db.Close()
			return err
		}
		failures, err := db.LastRunFailures()
		db.Close()
		if err != nil {
			return err
		}

		if len(failures) == 0 {
			fmt.Println("Nothing to retry: the previous run had no failures")
			return nil
		}

		e, err := setup()
		if err != nil {
			return err
		}

		games := make([]steam.Game, 0, len(failures))
		for _, f := range failures {
			games = append(games, steam.Game{AppID: f.AppID, Name: f.Name})
		}

		fmt.Printf("Retrying %d failed downloads\n", len(games))
		return finishRun(cmd.Context(), e, games)
	},
}
