package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npratt/gong/internal/config"
)

// projectMarkers are directories that indicate project root.
var projectMarkers = []string{".git", config.ProjectConfigDir}

// ResolvePaths converts relative paths to absolute paths using the given base directory.
// If basePath is empty, the current working directory is used.
func ResolvePaths(paths config.PathsConfig, basePath string) (config.PathsConfig, error) {
	if basePath == "" {
		var err error
		basePath, err = os.Getwd()
		if err != nil {
			return paths, fmt.Errorf("get working directory: %w", err)
		}
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(basePath, p)
	}

	return config.PathsConfig{
		EventLog:    resolve(paths.EventLog),
		DebugLogDir: resolve(paths.DebugLogDir),
		Socket:      resolve(paths.Socket),
		PID:         resolve(paths.PID),
	}, nil
}

// FindProjectRoot walks up the directory tree from startDir looking for
// project markers (.git or .gong). Returns the directory containing
// the marker, or startDir if no marker is found.
func FindProjectRoot(startDir string) string {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "."
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return startDir
	}

	dir := absDir
	for {
		for _, marker := range projectMarkers {
			if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return absDir
		}
		dir = parent
	}
}
