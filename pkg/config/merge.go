package config

import "strings"

// Merge applies layers to base in order; later layers win.
func Merge(base Settings, layers ...Config) Settings {
	out := base
	for _, layer := range layers {
		out.CAP = mergeAPI(out.CAP, layer.CAP)
		out.CourtListener = mergeAPI(out.CourtListener, layer.CourtListener)
		out.Store.Path = resolveAndTrim(out.Store.Path, layer.Store.Path)
		out.Render.GapMarker = resolveString(out.Render.GapMarker, layer.Render.GapMarker)
		out.Render.ContextMarkers = resolveBool(out.Render.ContextMarkers, layer.Render.ContextMarkers)
		out.Crawl.Depth = resolveInt(out.Crawl.Depth, layer.Crawl.Depth)
		out.Crawl.Workers = resolveInt(out.Crawl.Workers, layer.Crawl.Workers)
	}
	return out
}

func mergeAPI(base APISettings, layer APIConfig) APISettings {
	base.Token = resolveAndTrim(base.Token, layer.Token)
	base.Endpoint = resolveAndTrim(base.Endpoint, layer.Endpoint)
	return base
}

func resolveString(current string, override *string) string {
	if override != nil {
		return *override
	}
	return current
}

func resolveAndTrim(current string, override *string) string {
	if override != nil {
		return strings.TrimSpace(*override)
	}
	return current
}

func resolveBool(current bool, override *bool) bool {
	if override != nil {
		return *override
	}
	return current
}

func resolveInt(current int, override *int) int {
	if override != nil {
		return *override
	}
	return current
}
