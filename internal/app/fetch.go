package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/havokentity/steamicons/internal/batch"
	"github.com/havokentity/steamicons/internal/steam"
)

// runFetch acquires icons for explicitly requested app IDs, in the order
// given.
func runFetch(ctx context.Context, appIDs []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	return finishRun(ctx, e, resolveRequested(os.Stdout, e.installed, appIDs))
}

// resolveRequested turns the operator's app IDs into games, keeping the
// order given. IDs found in the local libraries pick up their display
// name; unknown IDs are attempted anyway with an empty name. The
// redistributable package passes through silently and gets dropped by the
// orchestrator.
func resolveRequested(w io.Writer, installed []steam.Game, appIDs []string) []steam.Game {
	byID := make(map[string]steam.Game, len(installed))
	for _, g := range installed {
		byID[g.AppID] = g
	}

	requested := make([]steam.Game, 0, len(appIDs))
	for _, id := range appIDs {
		game, ok := byID[id]
		if !ok {
			game = steam.Game{AppID: id}
			if id != batch.RedistributableAppID {
				fmt.Fprintf(w, "App %s is not in your libraries, trying to download its icon anyway\n", id)
			}
		}
		requested = append(requested, game)
	}

	return requested
}
