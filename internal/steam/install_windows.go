//go:build windows

package steam

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// findInstallPath reads the Steam install location from the registry key
// the Steam installer writes.
func findInstallPath() (string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\Valve\Steam`, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("failed to open Steam registry key: %w", err)
	}
	defer key.Close()

	path, _, err := key.GetStringValue("InstallPath")
	if err != nil {
		return "", fmt.Errorf("failed to read Steam InstallPath value: %w", err)
	}
	return path, nil
}
