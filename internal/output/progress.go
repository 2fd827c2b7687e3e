// Package output renders terminal progress for icon runs.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// writerIsTTY returns true if the writer exposes an Fd() method (e.g.
// *os.File) and that fd is a terminal. Plain io.Writer values such as
// *bytes.Buffer report false.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

// Progress is a counter-style progress bar:
//
//	[=========>          ] 3/10 Downloading icons
//
// On a TTY the line is redrawn in place; on non-TTY writers nothing is
// emitted until completion so piped output is not flooded with redraws.
type Progress struct {
	total   int
	current int
	label   string
	width   int
	mu      sync.Mutex
	writer  io.Writer
}

// NewProgress creates a progress bar for total items.
func NewProgress(total int, label string) *Progress {
	return &Progress{
		total:  total,
		label:  label,
		width:  30,
		writer: os.Stdout,
	}
}

// SetWriter sets the output writer (useful for testing).
func (p *Progress) SetWriter(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = w
}

// Increment advances the counter by one and redraws the bar.
func (p *Progress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < p.total {
		p.current++
	}
	p.render()
}

// Finish completes the bar and moves to a new line.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	alreadyDone := p.current == p.total
	p.current = p.total

	if writerIsTTY(p.writer) {
		p.render()
		fmt.Fprintln(p.writer)
	} else if !alreadyDone {
		p.render()
	}
}

// render draws the bar (must be called with the lock held).
func (p *Progress) render() {
	filled := 0
	if p.total > 0 {
		filled = (p.current * p.width) / p.total
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < p.width; i++ {
		switch {
		case i < filled-1:
			bar.WriteString("=")
		case i == filled-1:
			bar.WriteString(">")
		default:
			bar.WriteString(" ")
		}
	}
	bar.WriteString("]")

	if writerIsTTY(p.writer) {
		fmt.Fprintf(p.writer, "\r%s %d/%d %s", bar.String(), p.current, p.total, p.label)
		return
	}

	// Non-TTY: emit a single line at completion only.
	if p.current == p.total {
		fmt.Fprintf(p.writer, "%s %d/%d %s\n", bar.String(), p.current, p.total, p.label)
	}
}
