package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate reports every invalid setting.
func (s Settings) Validate() error {
	var errs []error
	if s.Render.GapMarker == "" {
		errs = append(errs, errors.New("render.gap_marker must not be empty"))
	}
	if s.Crawl.Workers < 1 {
		errs = append(errs, fmt.Errorf("crawl.workers must be positive, got %d", s.Crawl.Workers))
	}
	if s.Crawl.Depth < 0 {
		errs = append(errs, fmt.Errorf("crawl.depth must not be negative, got %d", s.Crawl.Depth))
	}
	if strings.TrimSpace(s.Store.Path) == "" {
		errs = append(errs, errors.New("store.path must not be empty"))
	}
	for name, endpoint := range map[string]string{"cap.endpoint": s.CAP.Endpoint, "courtlistener.endpoint": s.CourtListener.Endpoint} {
		u, err := url.Parse(endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an http(s) URL, got %q", name, endpoint))
		}
	}
	return errors.Join(errs...)
}
