package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Belphemur/StreamResolver/internal/apperrors"
	"github.com/Belphemur/StreamResolver/internal/catalog"
	"github.com/Belphemur/StreamResolver/internal/metadata"
	"github.com/Belphemur/StreamResolver/internal/models"
	"github.com/Belphemur/StreamResolver/internal/testutil"
)

type mockMetadata struct {
	resolveFunc func(ctx context.Context, catalogID string, kind models.MediaKind) (*models.CanonicalMedia, error)
	calls       int
}

func (m *mockMetadata) Resolve(ctx context.Context, catalogID string, kind models.MediaKind) (*models.CanonicalMedia, error) {
	m.calls++
	return m.resolveFunc(ctx, catalogID, kind)
}

type mockMatcher struct {
	matchFunc func(ctx context.Context, media *models.CanonicalMedia) (string, error)
	calls     int
}

func (m *mockMatcher) Match(ctx context.Context, media *models.CanonicalMedia) (string, error) {
	m.calls++
	return m.matchFunc(ctx, media)
}

type mockFetcher struct {
	fetchFunc func(ctx context.Context, internalID string, kind models.MediaKind, episode *models.EpisodeRef) ([]models.StreamVariant, error)
	calls     int
}

func (m *mockFetcher) FetchVariants(ctx context.Context, internalID string, kind models.MediaKind, episode *models.EpisodeRef) ([]models.StreamVariant, error) {
	m.calls++
	return m.fetchFunc(ctx, internalID, kind, episode)
}

func fixedStages(title string, variants []models.StreamVariant) (*mockMetadata, *mockMatcher, *mockFetcher) {
	md := &mockMetadata{resolveFunc: func(_ context.Context, id string, kind models.MediaKind) (*models.CanonicalMedia, error) {
		return &models.CanonicalMedia{CatalogID: id, Kind: kind, Title: title, Year: "2001"}, nil
	}}
	mm := &mockMatcher{matchFunc: func(context.Context, *models.CanonicalMedia) (string, error) {
		return "internal-1", nil
	}}
	mf := &mockFetcher{fetchFunc: func(context.Context, string, models.MediaKind, *models.EpisodeRef) ([]models.StreamVariant, error) {
		return variants, nil
	}}
	return md, mm, mf
}

func TestResolveMovie_SelectsBestVariant(t *testing.T) {
	md, mm, mf := fixedStages("Alpha", []models.StreamVariant{
		{Path: "https://cdn.example/720.mp4", Quality: models.Quality720p},
		{Path: "https://cdn.example/4k.mp4", Quality: models.Quality4K},
		{Path: "https://cdn.example/hdtv.mp4", Quality: models.QualityHDTV},
	})

	got, err := NewStreamResolver(md, mm, mf).ResolveMovie(context.Background(), "603")
	if err != nil {
		t.Fatalf("ResolveMovie: %v", err)
	}
	if got.URL != "https://cdn.example/4k.mp4" || got.Title != "Alpha" || got.Quality != models.Quality4K {
		t.Errorf("Unexpected stream %+v", got)
	}
	if got.Year != "2001" {
		t.Errorf("Year = %q, want 2001", got.Year)
	}
}

func TestResolveEpisode_DisplayTitle(t *testing.T) {
	md, mm, mf := fixedStages("Show", []models.StreamVariant{
		{Path: "https://cdn.example/e.mp4", Quality: models.Quality1080p},
	})
	var gotEpisode *models.EpisodeRef
	mf.fetchFunc = func(_ context.Context, _ string, kind models.MediaKind, ep *models.EpisodeRef) ([]models.StreamVariant, error) {
		if kind != models.Series {
			t.Errorf("kind = %v, want series", kind)
		}
		gotEpisode = ep
		return []models.StreamVariant{{Path: "https://cdn.example/e.mp4", Quality: models.Quality1080p}}, nil
	}

	got, err := NewStreamResolver(md, mm, mf).ResolveEpisode(context.Background(), "X", 2, 5)
	if err != nil {
		t.Fatalf("ResolveEpisode: %v", err)
	}
	if got.Title != "Show S2E5" {
		t.Errorf("Title = %q, want %q", got.Title, "Show S2E5")
	}
	if gotEpisode == nil || gotEpisode.Season != 2 || gotEpisode.Episode != 5 {
		t.Errorf("Fetcher got episode %+v", gotEpisode)
	}
}

func TestResolve_InvalidRequestsMakeNoCalls(t *testing.T) {
	tests := []struct {
		name string
		req  models.ResolveRequest
	}{
		{"series without episode", models.ResolveRequest{CatalogID: "1", Kind: models.Series}},
		{"blank id", models.ResolveRequest{CatalogID: "  ", Kind: models.Movie}},
		{"unknown kind", models.ResolveRequest{CatalogID: "1"}},
		{"negative season", models.ResolveRequest{CatalogID: "1", Kind: models.Series, Episode: &models.EpisodeRef{Season: -1, Episode: 1}}},
		{"episode zero", models.ResolveRequest{CatalogID: "1", Kind: models.Series, Episode: &models.EpisodeRef{Season: 1, Episode: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, mm, mf := fixedStages("Show", nil)
			s := NewStreamResolver(md, mm, mf)

			if _, err := s.Resolve(context.Background(), tt.req); !errors.Is(err, apperrors.ErrInvalidRequest) {
				t.Fatalf("Resolve: expected InvalidRequest, got %v", err)
			}
			if _, err := s.ListVariants(context.Background(), tt.req); !errors.Is(err, apperrors.ErrInvalidRequest) {
				t.Fatalf("ListVariants: expected InvalidRequest, got %v", err)
			}
			if md.calls+mm.calls+mf.calls != 0 {
				t.Errorf("Stages called on invalid request: metadata=%d matcher=%d fetcher=%d", md.calls, mm.calls, mf.calls)
			}
		})
	}
}

func TestResolve_SpecialsSeasonAllowed(t *testing.T) {
	md, mm, mf := fixedStages("Show", []models.StreamVariant{{Path: "https://cdn.example/sp.mp4"}})
	got, err := NewStreamResolver(md, mm, mf).ResolveEpisode(context.Background(), "1", 0, 12)
	if err != nil {
		t.Fatalf("ResolveEpisode: %v", err)
	}
	if got.Title != "Show S0E12" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestResolve_StageFailureStopsPipeline(t *testing.T) {
	md, mm, mf := fixedStages("Alpha", nil)
	md.resolveFunc = func(context.Context, string, models.MediaKind) (*models.CanonicalMedia, error) {
		return nil, apperrors.New(apperrors.KindMetadataNotFound, "metadata.resolve", nil)
	}

	_, err := NewStreamResolver(md, mm, mf).ResolveMovie(context.Background(), "1")
	if !errors.Is(err, apperrors.ErrMetadataNotFound) {
		t.Fatalf("Expected MetadataNotFound, got %v", err)
	}
	if mm.calls != 0 || mf.calls != 0 {
		t.Errorf("Later stages must not run: matcher=%d fetcher=%d", mm.calls, mf.calls)
	}
}

func TestResolve_NoPlayableVariant(t *testing.T) {
	md, mm, mf := fixedStages("Alpha", []models.StreamVariant{
		{Path: "https://cdn.example/a.m3u8", Quality: models.Quality1080p},
		{Path: "not a url", Quality: models.Quality4K},
	})
	_, err := NewStreamResolver(md, mm, mf).ResolveMovie(context.Background(), "1")
	if !errors.Is(err, apperrors.ErrNoPlayableVariant) {
		t.Fatalf("Expected NoPlayableVariant, got %v", err)
	}
}

func TestListVariants_Unfiltered(t *testing.T) {
	variants := []models.StreamVariant{
		{Path: "https://cdn.example/a.m3u8"},
		{Path: "https://cdn.example/a.mp4"},
	}
	md, mm, mf := fixedStages("Alpha", variants)

	got, err := NewStreamResolver(md, mm, mf).ListVariants(context.Background(), models.ResolveRequest{CatalogID: "1", Kind: models.Movie})
	if err != nil {
		t.Fatalf("ListVariants: %v", err)
	}
	if len(got) != 2 || got[0].Path != variants[0].Path {
		t.Errorf("Got %+v, want provider list unchanged", got)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{apperrors.ErrNoSearchResults, "NoSearchResults"},
		{context.Canceled, "canceled"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.want {
			t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

// TestResolveMovie_RoundTrip wires the real stages against fake providers.
func TestResolveMovie_RoundTrip(t *testing.T) {
	meta := testutil.NewFakeProvider(t)
	meta.Handle("/movie/603", testutil.GenerateMovieJSON("Alpha", "2001-09-01"))

	streaming := testutil.NewFakeProvider(t)
	streaming.Handle("/search", testutil.GenerateSearchJSON("alpha-1"))
	streaming.Handle("/details/movie/alpha-1", testutil.GenerateDetailJSON(603))
	streaming.Handle("/movie/alpha-1", testutil.GenerateStreamListJSON([]testutil.StreamSourceOptions{
		{Path: "https://cdn.example/alpha.mp4", RealQuality: "1080p"},
	}))

	catalogClient := catalog.NewClient(streaming.Server.Client(), streaming.URL())
	s := NewStreamResolver(
		metadata.NewResolver(meta.Server.Client(), meta.URL(), "", nil),
		catalog.NewMatcher(catalogClient, 1),
		catalog.NewFetcher(catalogClient),
	)

	got, err := s.ResolveMovie(context.Background(), "603")
	if err != nil {
		t.Fatalf("ResolveMovie: %v", err)
	}
	if got.URL != "https://cdn.example/alpha.mp4" || got.Title != "Alpha" {
		t.Errorf("Got %+v", got)
	}
	if got.Year != "2001" || got.Quality != models.Quality1080p {
		t.Errorf("Got year %q quality %q", got.Year, got.Quality)
	}

	wantOrder := []string{"/search", "/details/movie/alpha-1", "/movie/alpha-1"}
	hits := streaming.Hits()
	if len(hits) != len(wantOrder) {
		t.Fatalf("Streaming catalog hits = %v, want %v", hits, wantOrder)
	}
	for i, p := range wantOrder {
		if hits[i] != p {
			t.Errorf("hit[%d] = %s, want %s", i, hits[i], p)
		}
	}
}

func TestResolveEpisode_RoundTripWithoutEpisodeMakesNoRequest(t *testing.T) {
	meta := testutil.NewFakeProvider(t)
	streaming := testutil.NewFakeProvider(t)
	catalogClient := catalog.NewClient(streaming.Server.Client(), streaming.URL())
	s := NewStreamResolver(
		metadata.NewResolver(meta.Server.Client(), meta.URL(), "", nil),
		catalog.NewMatcher(catalogClient, 1),
		catalog.NewFetcher(catalogClient),
	)

	_, err := s.Resolve(context.Background(), models.ResolveRequest{CatalogID: "1399", Kind: models.Series})
	if !errors.Is(err, apperrors.ErrInvalidRequest) {
		t.Fatalf("Expected InvalidRequest, got %v", err)
	}
	if len(meta.Hits())+len(streaming.Hits()) != 0 {
		t.Errorf("Network calls made: metadata=%v streaming=%v", meta.Hits(), streaming.Hits())
	}
}
