package services

import (
	"context"

	"github.com/Belphemur/StreamResolver/internal/models"
)

// StreamResolver turns a catalog ID into a playable stream.
type StreamResolver interface {
	// Resolve runs the whole pipeline for req and returns the selected stream.
	Resolve(ctx context.Context, req models.ResolveRequest) (*models.SelectedStream, error)

	ResolveMovie(ctx context.Context, catalogID string) (*models.SelectedStream, error)
	ResolveEpisode(ctx context.Context, catalogID string, season, episode int) (*models.SelectedStream, error)

	// ListVariants runs the pipeline up to the variant list and returns it unfiltered.
	ListVariants(ctx context.Context, req models.ResolveRequest) ([]models.StreamVariant, error)
}

// Matcher finds the streaming catalog's internal ID for canonical media.
type Matcher interface {
	Match(ctx context.Context, media *models.CanonicalMedia) (string, error)
}

// VariantFetcher lists the stream variants of a matched title.
type VariantFetcher interface {
	FetchVariants(ctx context.Context, internalID string, kind models.MediaKind, episode *models.EpisodeRef) ([]models.StreamVariant, error)
}
