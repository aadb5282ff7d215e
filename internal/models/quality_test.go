package models

import "testing"

func TestQualityRanking_Order(t *testing.T) {
	want := []Quality{"4K", "1080p", "720p", "HDTV", "480p", "360p"}
	if len(QualityRanking) != len(want) {
		t.Fatalf("QualityRanking has %d labels, want %d", len(QualityRanking), len(want))
	}
	for i, q := range want {
		if QualityRanking[i] != q {
			t.Errorf("QualityRanking[%d] = %q, want %q", i, QualityRanking[i], q)
		}
	}
}

func TestParseMediaKind(t *testing.T) {
	tests := []struct {
		input  string
		want   MediaKind
		wantOK bool
	}{
		{"movie", Movie, true},
		{"MOVIE", Movie, true},
		{"tv", Series, true},
		{" series ", Series, true},
		{"anime", MediaKindUnknown, false},
		{"", MediaKindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseMediaKind(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseMediaKind(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMediaKind_String(t *testing.T) {
	if Movie.String() != "movie" {
		t.Errorf("Movie.String() = %q", Movie.String())
	}
	if Series.String() != "tv" {
		t.Errorf("Series.String() = %q", Series.String())
	}
	if MediaKindUnknown.String() != "unknown" {
		t.Errorf("MediaKindUnknown.String() = %q", MediaKindUnknown.String())
	}
}

func TestResolveRequest_DisplayTitle(t *testing.T) {
	episode := ResolveRequest{CatalogID: "X", Kind: Series, Episode: &EpisodeRef{Season: 2, Episode: 5}}
	if got := episode.DisplayTitle("Show"); got != "Show S2E5" {
		t.Errorf("Expected 'Show S2E5', got %q", got)
	}

	movie := ResolveRequest{CatalogID: "X", Kind: Movie}
	if got := movie.DisplayTitle("Alpha"); got != "Alpha" {
		t.Errorf("Expected 'Alpha', got %q", got)
	}

	special := ResolveRequest{Kind: Series, Episode: &EpisodeRef{Season: 0, Episode: 12}}
	if got := special.DisplayTitle("Show"); got != "Show S0E12" {
		t.Errorf("Expected 'Show S0E12', got %q", got)
	}
}

func TestContainerFromPath(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://cdn.example.com/v/movie.mp4", "mp4"},
		{"https://cdn.example.com/v/movie.MKV?token=1", "mkv"},
		{"https://cdn.example.com/v/playlist", ""},
		{"://bad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ContainerFromPath(tt.raw); got != tt.want {
				t.Errorf("ContainerFromPath(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
