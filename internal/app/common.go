package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/havokentity/steamicons/internal/batch"
	"github.com/havokentity/steamicons/internal/config"
	"github.com/havokentity/steamicons/internal/icon"
	"github.com/havokentity/steamicons/internal/session"
	"github.com/havokentity/steamicons/internal/steam"
	"github.com/havokentity/steamicons/internal/steamcmd"
	"github.com/havokentity/steamicons/internal/store"
)

// env bundles everything an acquiring run needs.
type env struct {
	steamPath string
	installed []steam.Game
	orch      *batch.Orchestrator
}

// locateSteam resolves flag, env, and config overrides into a Steam path.
func locateSteam(cfg config.Config) (string, error) {
	override := steamPathFlag
	if override == "" {
		override = cfg.SteamPath
	}
	path, err := steam.FindInstallPath(override)
	if err != nil {
		return "", fmt.Errorf("steam installation not found: %w", err)
	}
	return path, nil
}

// setup loads configuration, locates Steam, enumerates installed games,
// probes the metadata service, and wires the acquisition engine.
func setup() (*env, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	path, err := locateSteam(cfg)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Steam is installed at: %s\n", path)

	installed, err := steam.InstalledGames(path)
	if err != nil {
		return nil, err
	}

	sess := session.NewHTTPClient(cfg.AppInfoAPI)
	if sess.Connected() {
		fmt.Println("Connected to the appinfo service")
	} else {
		fmt.Println("Appinfo service unreachable, lookups will go through SteamCMD")
	}

	runner := steamcmd.NewExecRunner(path, cfg.SteamCMDURL, cfg.OutputWait())
	engine := icon.New(sess, runner, path, cfg.CDNBase)

	return &env{
		steamPath: path,
		installed: installed,
		orch:      batch.New(engine),
	}, nil
}

// finishRun drives the orchestrator, prints the report, and records the
// run in the local history.
func finishRun(ctx context.Context, e *env, games []steam.Game) error {
	started := time.Now()
	report, err := e.orch.Run(ctx, games)
	if err != nil {
		return err
	}

	report.Print(os.Stdout, "steamicons")
	saveHistory(started, report)
	return nil
}

// saveHistory persists the run outcome. History problems never fail the
// run; the operator already has the printed retry command.
func saveHistory(started time.Time, report *batch.Report) {
	path, err := getDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run history not saved: %v\n", err)
		return
	}

	db, err := store.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run history not saved: %v\n", err)
		return
	}
	defer db.Close()

	if err := db.CreateSchema(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: run history not saved: %v\n", err)
		return
	}
	if err := db.SaveRun(started, report); err != nil {
		fmt.Fprintf(os.Stderr, "warning: run history not saved: %v\n", err)
	}
}

// getDBPath returns the history database path, using the flag value or
// the default under the user's home directory.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".steamicons")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create steamicons directory: %w", err)
	}

	return filepath.Join(dir, "steamicons.db"), nil
}
