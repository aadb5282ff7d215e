package testutil

import (
	"encoding/json"
	"fmt"
)

// IntPtr is a helper for creating *int values in tests
func IntPtr(v int) *int {
	return &v
}

// Int32Ptr is a helper for creating *int32 values in tests
func Int32Ptr(v int32) *int32 {
	return &v
}

// StreamSourceOptions describes one entry of a variant list response.
type StreamSourceOptions struct {
	Path        string
	RealQuality string
	Quality     string // display label, defaults to RealQuality
}

// GenerateMovieJSON generates a metadata provider movie record.
func GenerateMovieJSON(title, releaseDate string) string {
	return mustJSON(map[string]any{
		"id":           1,
		"title":        title,
		"release_date": releaseDate,
		"overview":     "fixture",
	})
}

// GenerateTVJSON generates a metadata provider tv record.
func GenerateTVJSON(name, firstAirDate string) string {
	return mustJSON(map[string]any{
		"id":             1,
		"name":           name,
		"first_air_date": firstAirDate,
	})
}

// GenerateSearchJSON generates a catalog search response. ids keep their JSON
// type, so tests can mix numbers and strings.
func GenerateSearchJSON(ids ...any) string {
	items := make([]map[string]any, 0, len(ids))
	for i, id := range ids {
		items = append(items, map[string]any{
			"id":    id,
			"title": fmt.Sprintf("Result %d", i+1),
		})
	}
	return mustJSON(map[string]any{"data": items})
}

// GenerateDetailJSON generates a catalog detail response embedding tmdbID.
// Pass nil to produce a record with a null tmdb_id.
func GenerateDetailJSON(tmdbID any) string {
	return mustJSON(map[string]any{
		"data": map[string]any{
			"tmdb_id": tmdbID,
			"title":   "fixture",
		},
	})
}

// GenerateStreamListJSON generates a catalog variant list response.
func GenerateStreamListJSON(sources []StreamSourceOptions) string {
	list := make([]map[string]any, 0, len(sources))
	for _, s := range sources {
		quality := s.Quality
		if quality == "" {
			quality = s.RealQuality
		}
		list = append(list, map[string]any{
			"path":         s.Path,
			"real_quality": s.RealQuality,
			"quality":      quality,
		})
	}
	return mustJSON(map[string]any{"data": map[string]any{"list": list}})
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
