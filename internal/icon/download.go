package icon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/havokentity/steamicons/internal/steam"
)

// iconURL builds the CDN URL for one app's client icon.
func (e *Engine) iconURL(appID, stem string) string {
	return fmt.Sprintf("%s/steamcommunity/public/images/apps/%s/%s.ico", e.cdnBase, appID, stem)
}

// download fetches the icon bytes and writes them under steam/games,
// overwriting any previous copy. Repeated downloads of an unchanged icon
// converge to identical file content.
func (e *Engine) download(ctx context.Context, game steam.Game, stem string) Outcome {
	url := e.iconURL(game.AppID, stem)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fmt.Fprintf(e.out, "Failed to build the download request for %s: %v\n", url, err)
		return Outcome{Reason: ReasonDownloadFailed}
	}

	resp, err := e.http.Do(req)
	if err != nil {
		fmt.Fprintf(e.out, "Download of %s failed: %v\n", url, err)
		return Outcome{Skipped: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(e.out, "Failed to download client icon from %s (status %d)\n", url, resp.StatusCode)
		return Outcome{Reason: ReasonDownloadFailed}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(e.out, "Failed to read the icon body from %s: %v\n", url, err)
		return Outcome{Skipped: true}
	}

	iconPath := filepath.Join(e.steamPath, "steam", "games", stem+".ico")
	if err := os.MkdirAll(filepath.Dir(iconPath), 0755); err != nil {
		fmt.Fprintf(e.out, "Failed to create the icon directory: %v\n", err)
		return Outcome{Reason: ReasonDownloadFailed}
	}
	if err := os.WriteFile(iconPath, content, 0644); err != nil {
		fmt.Fprintf(e.out, "Failed to write %s: %v\n", iconPath, err)
		return Outcome{Reason: ReasonDownloadFailed}
	}

	fmt.Fprintf(e.out, "Client icon saved to %s\n", iconPath)
	return Outcome{Path: iconPath}
}
