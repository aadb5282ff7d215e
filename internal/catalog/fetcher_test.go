package catalog

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Belphemur/StreamResolver/internal/apperrors"
	"github.com/Belphemur/StreamResolver/internal/models"
	"github.com/Belphemur/StreamResolver/internal/testutil"
)

func TestFetchVariants_SeriesWithoutEpisode(t *testing.T) {
	called := false
	mc := &mockClient{
		streamsFunc: func(context.Context, string, models.MediaKind, *models.EpisodeRef) ([]models.StreamVariant, error) {
			called = true
			return nil, nil
		},
	}
	_, err := NewFetcher(mc).FetchVariants(context.Background(), "s-1", models.Series, nil)
	if !errors.Is(err, apperrors.ErrInvalidRequest) {
		t.Fatalf("Expected InvalidRequest, got %v", err)
	}
	if called {
		t.Error("Provider must not be called for an invalid request")
	}
}

func TestFetchVariants_ProviderFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"status", http.StatusBadGateway, `bad`},
		{"not json", http.StatusOK, `<html>`},
		{"missing data", http.StatusOK, `{"ok":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := testutil.NewFakeProvider(t)
			provider.HandleStatus("/movie/m-1", tt.status, tt.body)

			f := NewFetcher(NewClient(provider.Server.Client(), provider.URL()))
			_, err := f.FetchVariants(context.Background(), "m-1", models.Movie, nil)
			if !errors.Is(err, apperrors.ErrStreamListUnavailable) {
				t.Fatalf("Expected StreamListUnavailable, got %v", err)
			}
		})
	}
}

func TestFetchVariants_Episode(t *testing.T) {
	provider := testutil.NewFakeProvider(t)
	provider.Handle("/tv/s-1/2/5", testutil.GenerateStreamListJSON([]testutil.StreamSourceOptions{
		{Path: "https://cdn.example/s1.mp4", RealQuality: "720p"},
		{Path: "https://cdn.example/s1.mp4", RealQuality: "720p"},
	}))

	f := NewFetcher(NewClient(provider.Server.Client(), provider.URL()))
	got, err := f.FetchVariants(context.Background(), "s-1", models.Series, &models.EpisodeRef{Season: 2, Episode: 5})
	if err != nil {
		t.Fatalf("FetchVariants: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Duplicates must be preserved, got %d variants", len(got))
	}
}
