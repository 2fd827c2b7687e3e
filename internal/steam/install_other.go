//go:build !windows

package steam

import (
	"fmt"
	"os"
	"path/filepath"
)

// findInstallPath checks the directories Steam uses on Linux and macOS.
func findInstallPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	candidates := []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
		filepath.Join(home, "Library", "Application Support", "Steam"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	return "", fmt.Errorf("no Steam installation found (checked %d known locations)", len(candidates))
}
