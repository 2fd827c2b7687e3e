package batch

import (
	"fmt"
	"io"
	"strings"
)

// RetryArgs returns the failed app IDs in first-failure order.
func (r *Report) RetryArgs() []string {
	ids := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		ids = append(ids, f.AppID)
	}
	return ids
}

// Print writes the failure report and, when anything failed, a command
// line that retries exactly the failed app IDs.
func (r *Report) Print(w io.Writer, program string) {
	if len(r.Failures) == 0 {
		fmt.Fprintln(w, "All icons were downloaded successfully")
		return
	}

	fmt.Fprintln(w, "\nFailed icons:")
	for _, f := range r.Failures {
		fmt.Fprintf(w, "AppID: %s, Name: %s, Reason: %s\n", f.AppID, f.Name, f.Reason)
	}

	fmt.Fprintln(w, "\nTo retry downloading the failed icons, run:")
	fmt.Fprintf(w, "%s %s\n", program, strings.Join(r.RetryArgs(), " "))
}
