package config

import (
	"fmt"
	"os"
)

// Sources names where Resolve reads configuration from.
type Sources struct {
	// ConfigPath is an explicit config file; when empty Find searches for one.
	ConfigPath string
	// Dir is where the config file search starts. Defaults to ".".
	Dir string
	// DotEnvPath is a .env file. Its values apply only where the process
	// environment leaves a variable unset.
	DotEnvPath string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// Flags is the highest-precedence layer.
	Flags Config
}

// Resolve merges defaults, the config file, the .env file, the environment
// and flags, then validates the result. It also returns the config file
// used, if any.
func Resolve(src Sources) (Settings, string, error) {
	path, err := Find(src.Dir, src.ConfigPath, os.Getenv("XDG_CONFIG_HOME"))
	if err != nil {
		return Settings{}, "", fmt.Errorf("finding config: %w", err)
	}
	fileCfg, err := Load(path)
	if err != nil {
		return Settings{}, path, fmt.Errorf("loading config: %w", err)
	}

	dotenv, err := ReadDotEnv(src.DotEnvPath)
	if err != nil {
		return Settings{}, path, err
	}
	getenv := src.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	envCfg, err := FromEnv(func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	})
	if err != nil {
		return Settings{}, path, fmt.Errorf("reading environment: %w", err)
	}

	settings := Merge(Defaults(), fileCfg, envCfg, src.Flags)
	if err := settings.Validate(); err != nil {
		return Settings{}, path, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, path, nil
}
