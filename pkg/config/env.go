package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvCAPToken              = "CAP_API_TOKEN"
	EnvCAPEndpoint           = "CAP_API_ENDPOINT"
	EnvCourtListenerToken    = "COURTLISTENER_API_TOKEN"
	EnvCourtListenerEndpoint = "COURTLISTENER_API_ENDPOINT"
	EnvStore                 = "JUSTOPINION_STORE"
	EnvGapMarker             = "JUSTOPINION_GAP_MARKER"
	EnvContextMarkers        = "JUSTOPINION_CONTEXT_MARKERS"
	EnvCrawlDepth            = "JUSTOPINION_CRAWL_DEPTH"
	EnvCrawlWorkers          = "JUSTOPINION_CRAWL_WORKERS"
)

// ReadDotEnv parses a .env file into a map without touching the process
// environment. A missing file yields an empty map.
func ReadDotEnv(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" || !fileExists(path) {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return values, nil
}

// FromEnv builds a layer from environment variables looked up with getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid boolean %q", key, raw))
			return
		}
		*target = &v
	}
	setInt := func(target **int, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid integer %q", key, raw))
			return
		}
		*target = &v
	}

	setString(&cfg.CAP.Token, EnvCAPToken)
	setString(&cfg.CAP.Endpoint, EnvCAPEndpoint)
	setString(&cfg.CourtListener.Token, EnvCourtListenerToken)
	setString(&cfg.CourtListener.Endpoint, EnvCourtListenerEndpoint)
	setString(&cfg.Store.Path, EnvStore)
	// The gap marker is often whitespace-padded, e.g. " ... ".
	if raw := getenv(EnvGapMarker); raw != "" {
		cfg.Render.GapMarker = &raw
	}
	setBool(&cfg.Render.ContextMarkers, EnvContextMarkers)
	setInt(&cfg.Crawl.Depth, EnvCrawlDepth)
	setInt(&cfg.Crawl.Workers, EnvCrawlWorkers)

	return cfg, errors.Join(errs...)
}
