package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressNonTTYStaysQuietUntilDone(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(3, "Downloading icons")
	p.SetWriter(&buf)

	p.Increment()
	p.Increment()
	if buf.Len() != 0 {
		t.Fatalf("non-TTY writer got output before completion: %q", buf.String())
	}

	p.Increment()
	p.Finish()

	got := buf.String()
	if strings.Count(got, "\n") != 1 {
		t.Errorf("want exactly one completion line, got %q", got)
	}
	if !strings.Contains(got, "3/3 Downloading icons") {
		t.Errorf("completion line missing counter: %q", got)
	}
}

func TestProgressZeroTotalStaysQuiet(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(0, "Downloading icons")
	p.SetWriter(&buf)
	p.Finish()

	if buf.Len() != 0 {
		t.Errorf("zero-item run should emit nothing, got %q", buf.String())
	}
}
