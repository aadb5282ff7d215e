package models

import (
	"fmt"
	"strings"
)

// MediaKind distinguishes movies from series across both providers.
type MediaKind int

const (
	MediaKindUnknown MediaKind = iota
	Movie
	Series
)

// String returns the path segment both providers use for the kind.
func (k MediaKind) String() string {
	switch k {
	case Movie:
		return "movie"
	case Series:
		return "tv"
	default:
		return "unknown"
	}
}

// ParseMediaKind accepts "movie", "tv" and "series", case-insensitively.
func ParseMediaKind(s string) (MediaKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return Movie, true
	case "tv", "series":
		return Series, true
	default:
		return MediaKindUnknown, false
	}
}

// EpisodeRef addresses one episode of a series. Season 0 holds specials.
type EpisodeRef struct {
	Season  int
	Episode int
}

// Label formats the reference as "S<season>E<episode>" without padding.
func (e EpisodeRef) Label() string {
	return fmt.Sprintf("S%dE%d", e.Season, e.Episode)
}

// CanonicalMedia is what the metadata provider knows about a catalog ID.
type CanonicalMedia struct {
	CatalogID string    `json:"catalog_id"`
	Kind      MediaKind `json:"kind"`
	Title     string    `json:"title"`
	Year      string    `json:"year"` // 4 digits, from the release or first air date
}

// Candidate is one streaming catalog search hit, in provider ranking order.
type Candidate struct {
	InternalID string
}

// CandidateDetail is the part of a candidate's detail record used for disambiguation.
type CandidateDetail struct {
	InternalID string
	// ExternalID is the embedded catalog ID as literal text, empty when absent.
	ExternalID string
}

// ResolveRequest is the input of a resolution. Episode is required for series.
type ResolveRequest struct {
	CatalogID string
	Kind      MediaKind
	Episode   *EpisodeRef
}

// DisplayTitle composes the title shown to users: the bare title for movies,
// "<title> S<season>E<episode>" for series.
func (r ResolveRequest) DisplayTitle(title string) string {
	if r.Kind == Series && r.Episode != nil {
		return title + " " + r.Episode.Label()
	}
	return title
}
