// Package v1 holds the wire contract of the StreamResolverService gRPC API.
//
// Messages are plain Go structs encoded with the json codec registered by this
// package, so callers need no generated code: NewStreamResolverServiceClient
// sets the content subtype on every call.
package v1

// Media kinds accepted by ListStreamsRequest.Kind.
const (
	KindMovie  = "movie"
	KindSeries = "tv"
)

// ResolveMovieRequest asks for the best playable stream of a movie.
type ResolveMovieRequest struct {
	CatalogID string `json:"catalog_id"`
}

// ResolveEpisodeRequest asks for the best playable stream of a series episode.
// Season and Episode are pointers so that an omitted value can be told apart
// from season 0 (specials).
type ResolveEpisodeRequest struct {
	CatalogID string `json:"catalog_id"`
	Season    *int32 `json:"season,omitempty"`
	Episode   *int32 `json:"episode,omitempty"`
}

// ResolveResponse is the selected stream.
type ResolveResponse struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Year    string `json:"year,omitempty"`
	Quality string `json:"quality,omitempty"`
}

// ListStreamsRequest asks for every variant the streaming catalog offers.
type ListStreamsRequest struct {
	CatalogID string `json:"catalog_id"`
	Kind      string `json:"kind"`
	Season    *int32 `json:"season,omitempty"`
	Episode   *int32 `json:"episode,omitempty"`
}

// Stream is one variant as returned by the provider, unfiltered.
type Stream struct {
	Path        string `json:"path"`
	Container   string `json:"container,omitempty"`
	Quality     string `json:"quality,omitempty"`
	QualityName string `json:"quality_name,omitempty"`
}

// ListStreamsResponse keeps the provider's ordering.
type ListStreamsResponse struct {
	Streams []*Stream `json:"streams"`
}
