package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// manifestName is the project manifest discovered upward from the
// working directory.
const manifestName = "langtwo.toml"

type projectManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Run struct {
		Main string `toml:"main"`
	} `toml:"run"`
}

// entryFromManifest resolves the entry point file from the nearest manifest.
func entryFromManifest() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	path, err := findManifest(dir)
	if err != nil {
		return "", err
	}

	var m projectManifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if m.Run.Main == "" {
		return "", fmt.Errorf("%s: missing run.main", path)
	}
	return filepath.Join(filepath.Dir(path), m.Run.Main), nil
}

// findManifest walks from dir toward the filesystem root.
func findManifest(dir string) (string, error) {
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found (pass a file argument instead)", manifestName)
		}
		dir = parent
	}
}
