package steam

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	manifestName  = regexp.MustCompile(`"name"\s+"(.*?)"`)
	manifestAppID = regexp.MustCompile(`"appid"\s+"(\d+)"`)
)

// LibraryFolders returns the steamapps directory of every library declared
// in libraryfolders.vdf. The file is a VDF document, but the only values
// needed are the "path" entries, so it is scanned line by line: the path
// sits in the fourth quote-delimited token. Folders that no longer exist
// on disk are dropped.
func LibraryFolders(steamPath string) ([]string, error) {
	vdfPath := filepath.Join(steamPath, "steamapps", "libraryfolders.vdf")
	f, err := os.Open(vdfPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", vdfPath, err)
	}
	defer f.Close()

	var folders []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, `"path"`) {
			continue
		}
		parts := strings.Split(strings.TrimSpace(line), `"`)
		if len(parts) < 5 {
			continue
		}
		// VDF escapes backslashes in Windows paths.
		path := strings.ReplaceAll(parts[3], `\\`, `\`)
		path = filepath.Join(path, "steamapps")
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			folders = append(folders, path)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", vdfPath, err)
	}

	return folders, nil
}

// InstalledGames scans every library folder for app manifest (.acf) files
// and returns the installed titles. Manifests missing either the appid or
// the name are skipped.
func InstalledGames(steamPath string) ([]Game, error) {
	folders, err := LibraryFolders(steamPath)
	if err != nil {
		return nil, err
	}

	var games []Game
	for _, folder := range folders {
		entries, err := os.ReadDir(folder)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".acf") {
				continue
			}
			content, err := os.ReadFile(filepath.Join(folder, entry.Name()))
			if err != nil {
				continue
			}
			if game, ok := parseManifest(string(content)); ok {
				games = append(games, game)
			}
		}
	}

	return games, nil
}

// parseManifest extracts the appid and display name from one app manifest.
func parseManifest(content string) (Game, bool) {
	nameMatch := manifestName.FindStringSubmatch(content)
	appIDMatch := manifestAppID.FindStringSubmatch(content)
	if nameMatch == nil || appIDMatch == nil {
		return Game{}, false
	}
	return Game{AppID: appIDMatch[1], Name: nameMatch[1]}, true
}
