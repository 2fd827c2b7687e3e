package app

import (
	"fmt"

	"github.com/havokentity/steamicons/internal/config"
	"github.com/havokentity/steamicons/internal/steam"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed Steam games",
	Long: `List every title found in your Steam library folders, one per line
with its app ID. Nothing is downloaded.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	path, err := locateSteam(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Steam is installed at: %s\n", path)

	games, err := steam.InstalledGames(path)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Println("No Steam games found in your local libraries")
		return nil
	}

	fmt.Println("Installed Steam games:")
	for _, g := range games {
		fmt.Printf(" - %s: %s\n", g.AppID, g.Name)
	}
	fmt.Printf("\nTotal games installed: %d\n", len(games))
	return nil
}
