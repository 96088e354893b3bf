// Package config resolves settings from defaults, a YAML or TOML config
// file, a .env file, the environment, and command-line flags, in that
// order of increasing precedence.
package config

import (
	"github.com/justopinion/justopinion/pkg/client"
	"github.com/justopinion/justopinion/pkg/textpos"
)

// Settings is a fully resolved configuration.
type Settings struct {
	CAP           APISettings
	CourtListener APISettings
	Store         StoreSettings
	Render        textpos.RenderOptions
	Crawl         CrawlSettings
}

// APISettings configures one case-law API.
type APISettings struct {
	Token    string
	Endpoint string
}

// StoreSettings selects the research database.
type StoreSettings struct {
	Path string
}

// CrawlSettings bounds citation crawls.
type CrawlSettings struct {
	Depth   int
	Workers int
}

// Config is one layer of configuration. Nil fields leave the value from
// lower layers unchanged.
type Config struct {
	CAP           APIConfig    `yaml:"cap" toml:"cap"`
	CourtListener APIConfig    `yaml:"courtlistener" toml:"courtlistener"`
	Store         StoreConfig  `yaml:"store" toml:"store"`
	Render        RenderConfig `yaml:"render" toml:"render"`
	Crawl         CrawlConfig  `yaml:"crawl" toml:"crawl"`
}

type APIConfig struct {
	Token    *string `yaml:"token" toml:"token"`
	Endpoint *string `yaml:"endpoint" toml:"endpoint"`
}

type StoreConfig struct {
	Path *string `yaml:"path" toml:"path"`
}

type RenderConfig struct {
	GapMarker      *string `yaml:"gap_marker" toml:"gap_marker"`
	ContextMarkers *bool   `yaml:"context_markers" toml:"context_markers"`
}

type CrawlConfig struct {
	Depth   *int `yaml:"depth" toml:"depth"`
	Workers *int `yaml:"workers" toml:"workers"`
}

// DefaultStorePath is the research database used when none is configured.
const DefaultStorePath = "justopinion.db"

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		CAP:           APISettings{Endpoint: client.DefaultCAPEndpoint},
		CourtListener: APISettings{Endpoint: client.DefaultCourtListenerEndpoint},
		Store:         StoreSettings{Path: DefaultStorePath},
		Render:        textpos.RenderOptions{GapMarker: textpos.DefaultGapMarker},
		Crawl:         CrawlSettings{Depth: 1, Workers: client.DefaultCrawlWorkers},
	}
}
