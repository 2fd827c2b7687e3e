package steamcmd

import (
	"bufio"
	"strings"
)

// ParseClientIcon scans SteamCMD appinfo output for the first line carrying
// a quoted clienticon key and returns the icon filename stem. Appinfo lines
// are tab-separated quoted pairs, so the value sits in the fourth
// quote-delimited token:
//
//	"clienticon"		"8dbc71957312bbd3baea65848b545be9eae2a355"
func ParseClientIcon(output string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, `"clienticon"`) {
			continue
		}
		parts := strings.Split(strings.TrimSpace(line), `"`)
		if len(parts) > 3 && parts[3] != "" {
			return parts[3], true
		}
	}
	return "", false
}
