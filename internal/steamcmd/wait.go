package steamcmd

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	defaultOutputWait = 10 * time.Second

	// settleDelay is how long the output file must go without writes
	// before it is considered flushed.
	settleDelay = 300 * time.Millisecond
)

// waitForOutput waits until the output file stops receiving writes,
// bounded by timeout. SteamCMD flushes asynchronously, so the file can
// still grow briefly after the process has exited. When no watcher can be
// created, a fixed delay stands in for the event wait.
func waitForOutput(ctx context.Context, path string, timeout time.Duration) {
	if timeout <= 0 {
		timeout = defaultOutputWait
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		time.Sleep(settleDelay)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		time.Sleep(settleDelay)
		return
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	settle := time.NewTimer(settleDelay)
	defer settle.Stop()

	for {
		select {
		case event := <-watcher.Events:
			if event.Has(fsnotify.Write) {
				if !settle.Stop() {
					select {
					case <-settle.C:
					default:
					}
				}
				settle.Reset(settleDelay)
			}
		case <-watcher.Errors:
			return
		case <-settle.C:
			return
		case <-deadline.C:
			return
		case <-ctx.Done():
			return
		}
	}
}
