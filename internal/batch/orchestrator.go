// Package batch drives icon acquisition over a set of games, sequentially,
// and collects every failure for the end-of-run report.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/havokentity/steamicons/internal/icon"
	"github.com/havokentity/steamicons/internal/output"
	"github.com/havokentity/steamicons/internal/steam"
)

// RedistributableAppID is Steam Common Redistributables, a support package
// some games pull in. It is not a game, has no icon, and is skipped even
// when requested explicitly.
const RedistributableAppID = "228980"

// FailureRecord notes why one app's icon could not be obtained.
type FailureRecord struct {
	AppID  string
	Name   string
	Reason icon.Reason
}

// Report is the result of one acquiring run. Failures keep first-seen
// order; they are never sorted.
type Report struct {
	Attempted int
	Saved     int
	Skipped   int
	Failures  []FailureRecord
}

// Acquirer resolves and downloads one game's icon.
type Acquirer interface {
	Acquire(ctx context.Context, game steam.Game) (icon.Outcome, error)
}

// Orchestrator runs the engine over a requested set of games.
type Orchestrator struct {
	engine Acquirer
	out    io.Writer
}

// New builds an orchestrator around an acquisition engine.
func New(engine Acquirer) *Orchestrator {
	return &Orchestrator{engine: engine, out: os.Stdout}
}

// SetOutput redirects status lines and the progress bar (useful for
// testing).
func (o *Orchestrator) SetOutput(w io.Writer) {
	o.out = w
}

// Run acquires icons for every game in order, one at a time. Failures are
// accumulated in an explicit list and returned with the report; only a
// configuration error aborts the loop.
func (o *Orchestrator) Run(ctx context.Context, games []steam.Game) (*Report, error) {
	report := &Report{}

	bar := output.NewProgress(len(games), "Downloading icons")
	bar.SetWriter(o.out)

	for _, game := range games {
		if game.AppID == RedistributableAppID {
			fmt.Fprintf(o.out, "Skipping app %s (Steam Common Redistributables), not a game\n", game.AppID)
			bar.Increment()
			continue
		}

		outcome, err := o.engine.Acquire(ctx, game)
		if err != nil {
			return nil, err
		}

		report.Attempted++
		switch {
		case outcome.Path != "":
			report.Saved++
		case outcome.Skipped:
			report.Skipped++
		case outcome.Reason != "":
			report.Failures = append(report.Failures, FailureRecord{
				AppID:  game.AppID,
				Name:   game.Name,
				Reason: outcome.Reason,
			})
		}
		bar.Increment()
	}

	bar.Finish()
	return report, nil
}
