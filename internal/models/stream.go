package models

import (
	"net/url"
	"path"
	"strings"
)

// StreamVariant is one playable encoding as listed by the streaming catalog.
// Path is kept verbatim; validity is decided by the selector.
type StreamVariant struct {
	Path          string
	ContainerHint string
	Quality       Quality
	// QualityName is the provider's display label, informational only.
	QualityName string
}

// ContainerFromPath returns the lowercase extension of the URL path without the dot,
// or "" when raw does not parse or has no extension.
func ContainerFromPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(path.Ext(u.Path)), ".")
}

// SelectedStream is the outcome of a resolution. The caller owns it.
type SelectedStream struct {
	URL     string
	Title   string
	Year    string
	Quality Quality
}
