package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	configFilenames = []string{
		".justopinion.yaml",
		".justopinion.yml",
		".justopinion.toml",
	}
	xdgFilenames = []string{
		"config.yaml",
		"config.yml",
		"config.toml",
	}
)

// Find returns the config file to load: explicitPath if given, else the
// first dotfile found walking up from dir, else a file under
// $XDG_CONFIG_HOME/justopinion (or ~/.config/justopinion). It returns ""
// when there is none.
func Find(dir, explicitPath, xdgHome string) (string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", err
		}
		if info.IsDir() {
			return "", fmt.Errorf("config path %q is a directory", explicit)
		}
		return explicit, nil
	}

	start := strings.TrimSpace(dir)
	if start == "" {
		start = "."
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for d := abs; ; {
		for _, name := range configFilenames {
			if candidate := filepath.Join(d, name); fileExists(candidate) {
				return candidate, nil
			}
		}
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}

	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" {
		if home, err := os.UserHomeDir(); err == nil {
			xdgRoot = filepath.Join(home, ".config")
		}
	}
	if xdgRoot != "" {
		for _, name := range xdgFilenames {
			if candidate := filepath.Join(xdgRoot, "justopinion", name); fileExists(candidate) {
				return candidate, nil
			}
		}
	}
	return "", nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
