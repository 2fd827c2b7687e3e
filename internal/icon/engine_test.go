package icon

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/havokentity/steamicons/internal/session"
	"github.com/havokentity/steamicons/internal/steam"
)

// fakeSession is a canned metadata service.
type fakeSession struct {
	connected bool
	icons     map[string]string // appID -> clienticon stem; "" means entry without icon
	err       error
}

func (f *fakeSession) Connected() bool { return f.connected }

func (f *fakeSession) ProductInfo(_ context.Context, appID string) (*session.ProductInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	stem, ok := f.icons[appID]
	if !ok {
		return nil, nil
	}
	info := &session.ProductInfo{}
	info.Common.ClientIcon = stem
	return info, nil
}

// fakeRunner replays canned SteamCMD output.
type fakeRunner struct {
	output       string
	installErr   error
	invokeErr    error
	invoked      bool
	installCalls int
}

func (f *fakeRunner) EnsureInstalled() (string, error) {
	f.installCalls++
	if f.installErr != nil {
		return "", f.installErr
	}
	return "steamcmd", nil
}

func (f *fakeRunner) AppInfo(context.Context, string) (string, error) {
	f.invoked = true
	if f.invokeErr != nil {
		return "", f.invokeErr
	}
	return f.output, nil
}

// newCDN serves icon bytes for the given stems.
func newCDN(t *testing.T, icons map[string][]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stem := filepath.Base(r.URL.Path)
		if body, ok := icons[stem]; ok {
			w.Write(body)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestEngine(t *testing.T, sess session.Client, runner *fakeRunner, cdn *httptest.Server) (*Engine, string) {
	t.Helper()
	steamPath := t.TempDir()
	engine := New(sess, runner, steamPath, cdn.URL)
	engine.SetOutput(&bytes.Buffer{})
	return engine, steamPath
}

func TestAcquireFastPath(t *testing.T) {
	cdn := newCDN(t, map[string][]byte{"icon_abc.ico": []byte("ico-bytes")})
	sess := &fakeSession{connected: true, icons: map[string]string{"730": "icon_abc"}}
	runner := &fakeRunner{}
	engine, steamPath := newTestEngine(t, sess, runner, cdn)

	outcome, err := engine.Acquire(context.Background(), steam.Game{AppID: "730", Name: "CS"})
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	want := filepath.Join(steamPath, "steam", "games", "icon_abc.ico")
	if outcome.Path != want {
		t.Fatalf("outcome path = %q, want %q", outcome.Path, want)
	}
	content, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("icon file missing: %v", err)
	}
	if string(content) != "ico-bytes" {
		t.Errorf("icon content = %q", content)
	}
	if runner.invoked {
		t.Error("a connected session must never fall back to SteamCMD")
	}
}

func TestAcquireIsIdempotent(t *testing.T) {
	cdn := newCDN(t, map[string][]byte{"icon_abc.ico": []byte("ico-bytes")})
	sess := &fakeSession{connected: true, icons: map[string]string{"730": "icon_abc"}}
	engine, steamPath := newTestEngine(t, sess, &fakeRunner{}, cdn)

	for i := 0; i < 2; i++ {
		if _, err := engine.Acquire(context.Background(), steam.Game{AppID: "730"}); err != nil {
			t.Fatalf("Acquire #%d failed: %v", i+1, err)
		}
	}

	content, err := os.ReadFile(filepath.Join(steamPath, "steam", "games", "icon_abc.ico"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "ico-bytes" {
		t.Errorf("repeated acquisition changed the file content: %q", content)
	}
}

func TestAcquireFastPathNoIcon(t *testing.T) {
	cdn := newCDN(t, nil)
	// Entry exists but has no clienticon field.
	sess := &fakeSession{connected: true, icons: map[string]string{"1081270": ""}}
	runner := &fakeRunner{output: mockFallbackOutputWithIcon}
	engine, _ := newTestEngine(t, sess, runner, cdn)

	outcome, err := engine.Acquire(context.Background(), steam.Game{AppID: "1081270"})
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if outcome.Reason != ReasonNotFound {
		t.Errorf("reason = %q, want %q", outcome.Reason, ReasonNotFound)
	}
	if runner.invoked {
		t.Error("a connected session's no-icon answer must not trigger the fallback")
	}
}

func TestAcquireFastPathTransportError(t *testing.T) {
	cdn := newCDN(t, nil)
	sess := &fakeSession{connected: true, err: errors.New("connection reset")}
	runner := &fakeRunner{}
	engine, _ := newTestEngine(t, sess, runner, cdn)

	outcome, err := engine.Acquire(context.Background(), steam.Game{AppID: "730"})
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if !outcome.Skipped {
		t.Errorf("outcome = %+v, want a transport skip", outcome)
	}
	if runner.invoked {
		t.Error("a fast-path transport error must not trigger the fallback")
	}
}

const mockFallbackOutputWithIcon = `Loading Steam API...OK
"9000"
{
	"common"
	{
		"clienticon"		"fallback_icon"
	}
}
`

func TestAcquireFallbackPath(t *testing.T) {
	cdn := newCDN(t, map[string][]byte{"fallback_icon.ico": []byte("fb")})
	sess := &fakeSession{connected: false}
	runner := &fakeRunner{output: mockFallbackOutputWithIcon}
	engine, steamPath := newTestEngine(t, sess, runner, cdn)

	outcome, err := engine.Acquire(context.Background(), steam.Game{AppID: "9000"})
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if !runner.invoked {
		t.Fatal("disconnected session must use the SteamCMD fallback")
	}
	if runner.installCalls != 1 {
		t.Errorf("EnsureInstalled called %d times, want exactly once per acquisition", runner.installCalls)
	}
	want := filepath.Join(steamPath, "steam", "games", "fallback_icon.ico")
	if outcome.Path != want {
		t.Errorf("outcome path = %q, want %q", outcome.Path, want)
	}
}

func TestAcquireFallbackIconNotFound(t *testing.T) {
	cdn := newCDN(t, nil)
	sess := &fakeSession{connected: false}
	runner := &fakeRunner{output: "no icon lines here\n"}
	engine, _ := newTestEngine(t, sess, runner, cdn)

	outcome, err := engine.Acquire(context.Background(), steam.Game{AppID: "9999999"})
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if outcome.Reason != ReasonNotFound {
		t.Errorf("reason = %q, want %q", outcome.Reason, ReasonNotFound)
	}
}

func TestAcquireFallbackInstallFailureIsFatal(t *testing.T) {
	cdn := newCDN(t, nil)
	sess := &fakeSession{connected: false}
	runner := &fakeRunner{installErr: errors.New("bootstrap failed")}
	engine, _ := newTestEngine(t, sess, runner, cdn)

	if _, err := engine.Acquire(context.Background(), steam.Game{AppID: "730"}); err == nil {
		t.Error("a missing, un-bootstrappable SteamCMD must abort the run")
	}
}

func TestAcquireDownloadFailure(t *testing.T) {
	cdn := newCDN(t, nil) // CDN answers 404 for every stem
	sess := &fakeSession{connected: true, icons: map[string]string{"730": "gone_icon"}}
	engine, steamPath := newTestEngine(t, sess, &fakeRunner{}, cdn)

	outcome, err := engine.Acquire(context.Background(), steam.Game{AppID: "730"})
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if outcome.Reason != ReasonDownloadFailed {
		t.Errorf("reason = %q, want %q", outcome.Reason, ReasonDownloadFailed)
	}
	if _, err := os.Stat(filepath.Join(steamPath, "steam", "games", "gone_icon.ico")); !os.IsNotExist(err) {
		t.Error("no icon file may be written on a failed download")
	}
}
