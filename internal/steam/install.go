// Package steam locates the local Steam installation and enumerates the
// titles installed in its library folders.
package steam

import (
	"fmt"
	"os"
)

// FindInstallPath returns the Steam installation directory. A non-empty
// override (flag, environment, or config file) wins over platform
// discovery; it must name an existing directory.
func FindInstallPath(override string) (string, error) {
	if override != "" {
		info, err := os.Stat(override)
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("steam path %s is not a directory", override)
		}
		return override, nil
	}
	return findInstallPath()
}
