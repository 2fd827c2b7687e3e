package batch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/havokentity/steamicons/internal/icon"
	"github.com/havokentity/steamicons/internal/steam"
)

// scriptedEngine returns a canned outcome per app ID and records what it
// was asked to acquire.
type scriptedEngine struct {
	outcomes map[string]icon.Outcome
	err      error
	acquired []string
}

func (s *scriptedEngine) Acquire(_ context.Context, game steam.Game) (icon.Outcome, error) {
	s.acquired = append(s.acquired, game.AppID)
	if s.err != nil {
		return icon.Outcome{}, s.err
	}
	return s.outcomes[game.AppID], nil
}

func TestRunSkipsRedistributable(t *testing.T) {
	engine := &scriptedEngine{outcomes: map[string]icon.Outcome{
		"730": {Path: "/icons/abc.ico"},
	}}
	orch := New(engine)
	orch.SetOutput(&bytes.Buffer{})

	report, err := orch.Run(context.Background(), []steam.Game{
		{AppID: RedistributableAppID},
		{AppID: "730", Name: "CS"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(engine.acquired) != 1 || engine.acquired[0] != "730" {
		t.Errorf("acquired = %v, want only 730", engine.acquired)
	}
	if report.Attempted != 1 || report.Saved != 1 {
		t.Errorf("report = %+v", report)
	}
	for _, f := range report.Failures {
		if f.AppID == RedistributableAppID {
			t.Error("the redistributable package must never appear in the failure list")
		}
	}
}

func TestRunKeepsFailureOrder(t *testing.T) {
	engine := &scriptedEngine{outcomes: map[string]icon.Outcome{
		"570":     {Reason: icon.ReasonDownloadFailed},
		"730":     {Path: "/icons/abc.ico"},
		"9999999": {Reason: icon.ReasonNotFound},
		"440":     {Reason: icon.ReasonNotFound},
	}}
	orch := New(engine)
	orch.SetOutput(&bytes.Buffer{})

	report, err := orch.Run(context.Background(), []steam.Game{
		{AppID: "570"}, {AppID: "730"}, {AppID: "9999999"}, {AppID: "440"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := report.RetryArgs()
	want := []string{"570", "9999999", "440"}
	if len(got) != len(want) {
		t.Fatalf("RetryArgs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("RetryArgs = %v, want %v (first-failure order)", got, want)
		}
	}
}

func TestRunCountsTransportSkips(t *testing.T) {
	engine := &scriptedEngine{outcomes: map[string]icon.Outcome{
		"730": {Skipped: true},
	}}
	orch := New(engine)
	orch.SetOutput(&bytes.Buffer{})

	report, err := orch.Run(context.Background(), []steam.Game{{AppID: "730"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Skipped != 1 || len(report.Failures) != 0 {
		t.Errorf("report = %+v, want one skip and no failures", report)
	}
}

func TestRunAbortsOnEngineError(t *testing.T) {
	engine := &scriptedEngine{err: errors.New("steamcmd bootstrap failed")}
	orch := New(engine)
	orch.SetOutput(&bytes.Buffer{})

	if _, err := orch.Run(context.Background(), []steam.Game{{AppID: "730"}}); err == nil {
		t.Error("a configuration error from the engine must abort the run")
	}
}

func TestReportPrint(t *testing.T) {
	report := &Report{Failures: []FailureRecord{
		{AppID: "9999999", Name: "", Reason: icon.ReasonNotFound},
		{AppID: "570", Name: "Dota 2", Reason: icon.ReasonDownloadFailed},
	}}

	var buf bytes.Buffer
	report.Print(&buf, "steamicons")

	got := buf.String()
	if !strings.Contains(got, "AppID: 9999999, Name: , Reason: icon_not_found") {
		t.Errorf("missing failure line in %q", got)
	}
	if !strings.Contains(got, "steamicons 9999999 570") {
		t.Errorf("missing retry command in %q", got)
	}
}

func TestReportPrintNoFailures(t *testing.T) {
	var buf bytes.Buffer
	(&Report{Saved: 2}).Print(&buf, "steamicons")

	got := buf.String()
	if !strings.Contains(got, "All icons were downloaded successfully") {
		t.Errorf("unexpected report: %q", got)
	}
	if strings.Contains(got, "retry") {
		t.Errorf("no retry command expected: %q", got)
	}
}
