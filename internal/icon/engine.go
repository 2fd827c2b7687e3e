// Package icon implements icon acquisition: resolving a client icon
// reference for one app through the fast metadata path or the SteamCMD
// fallback, then downloading the .ico from the Steam CDN into the local
// steam/games folder.
package icon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/havokentity/steamicons/internal/session"
	"github.com/havokentity/steamicons/internal/steam"
	"github.com/havokentity/steamicons/internal/steamcmd"
)

// Reason classifies a reportable acquisition failure.
type Reason string

const (
	// ReasonNotFound means no client icon reference exists for the app.
	ReasonNotFound Reason = "icon_not_found"
	// ReasonDownloadFailed means the CDN refused to serve the icon bytes.
	ReasonDownloadFailed Reason = "failed_to_download"
)

// Outcome is the result of acquiring one app's icon. Exactly one of the
// three states holds: Path is set (icon written), Reason is set
// (reportable failure), or Skipped is true (a transport error prevented
// any answer; the app is neither saved nor recorded as failed).
type Outcome struct {
	Path    string
	Reason  Reason
	Skipped bool
}

// resolution is the uniform answer from either lookup path.
type resolution int

const (
	resolutionFound resolution = iota
	resolutionNotFound
	resolutionTransportError
)

// Engine acquires client icons one app at a time.
type Engine struct {
	session   session.Client
	runner    steamcmd.Runner
	steamPath string
	cdnBase   string

	http *http.Client
	out  io.Writer
}

// New builds an engine. cdnBase is the scheme and host of the Steam CDN,
// without a trailing slash.
func New(sess session.Client, runner steamcmd.Runner, steamPath, cdnBase string) *Engine {
	return &Engine{
		session:   sess,
		runner:    runner,
		steamPath: steamPath,
		cdnBase:   cdnBase,
		http:      &http.Client{Timeout: 30 * time.Second},
		out:       os.Stdout,
	}
}

// SetOutput redirects status lines (useful for testing).
func (e *Engine) SetOutput(w io.Writer) {
	e.out = w
}

// Acquire resolves and downloads the client icon for one game. A connected
// session is authoritative: its answer, including "no icon", is never
// second-guessed by the SteamCMD fallback. The returned error is reserved
// for configuration failures that make the whole run pointless (SteamCMD
// missing and un-bootstrappable); per-app failures land in the Outcome.
func (e *Engine) Acquire(ctx context.Context, game steam.Game) (Outcome, error) {
	var (
		res  resolution
		stem string
	)

	if e.session != nil && e.session.Connected() {
		res, stem = e.fastPath(ctx, game)
	} else {
		fmt.Fprintf(e.out, "[FAST] not connected, using SteamCMD for app %s\n", game.AppID)
		var err error
		res, stem, err = e.fallbackPath(ctx, game)
		if err != nil {
			return Outcome{}, err
		}
	}

	switch res {
	case resolutionTransportError:
		return Outcome{Skipped: true}, nil
	case resolutionNotFound:
		fmt.Fprintf(e.out, "Client icon for %s - %s not found\n", game.Name, game.AppID)
		return Outcome{Reason: ReasonNotFound}, nil
	}

	return e.download(ctx, game, stem), nil
}

// fastPath asks the metadata service for the app's clienticon field.
func (e *Engine) fastPath(ctx context.Context, game steam.Game) (resolution, string) {
	info, err := e.session.ProductInfo(ctx, game.AppID)
	if err != nil {
		fmt.Fprintf(e.out, "[FAST] metadata query for app %s failed: %v\n", game.AppID, err)
		return resolutionTransportError, ""
	}
	if info == nil {
		fmt.Fprintf(e.out, "[FAST] no product info for app %s\n", game.AppID)
		return resolutionNotFound, ""
	}
	stem := info.ClientIcon()
	if stem == "" {
		fmt.Fprintf(e.out, "[FAST] no clienticon in the product info for app %s\n", game.AppID)
		return resolutionNotFound, ""
	}

	fmt.Fprintf(e.out, "[FAST] Client icon URL for %s - %s: %s\n", game.Name, game.AppID, e.iconURL(game.AppID, stem))
	return resolutionFound, stem
}

// fallbackPath extracts the clienticon field from SteamCMD appinfo output.
// An EnsureInstalled failure propagates as a fatal error; an invocation
// failure only skips the app.
func (e *Engine) fallbackPath(ctx context.Context, game steam.Game) (resolution, string, error) {
	if _, err := e.runner.EnsureInstalled(); err != nil {
		return resolutionTransportError, "", err
	}

	output, err := e.runner.AppInfo(ctx, game.AppID)
	if err != nil {
		fmt.Fprintf(e.out, "SteamCMD lookup for app %s failed: %v\n", game.AppID, err)
		return resolutionTransportError, "", nil
	}

	stem, ok := steamcmd.ParseClientIcon(output)
	if !ok {
		return resolutionNotFound, "", nil
	}

	fmt.Fprintf(e.out, "Client icon URL for %s - %s: %s\n", game.Name, game.AppID, e.iconURL(game.AppID, stem))
	return resolutionFound, stem, nil
}
