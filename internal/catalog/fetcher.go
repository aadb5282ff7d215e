package catalog

import (
	"context"
	"errors"

	"github.com/Belphemur/StreamResolver/internal/apperrors"
	"github.com/Belphemur/StreamResolver/internal/config"
	"github.com/Belphemur/StreamResolver/internal/models"
)

const fetchOp = "catalog.fetch_variants"

// Fetcher lists the stream variants of a matched title.
type Fetcher struct {
	client Client
}

// NewFetcher creates a Fetcher.
func NewFetcher(client Client) *Fetcher {
	return &Fetcher{client: client}
}

// FetchVariants returns the provider's variant list for internalID. Series
// require episode; a nil episode is a caller error and no request is made.
func (f *Fetcher) FetchVariants(ctx context.Context, internalID string, kind models.MediaKind, episode *models.EpisodeRef) ([]models.StreamVariant, error) {
	if kind == models.Series && episode == nil {
		return nil, apperrors.NewInvalidRequestError("season and episode are required for series")
	}
	if kind != models.Movie && kind != models.Series {
		return nil, apperrors.NewInvalidRequestError("unsupported media kind %q", kind)
	}

	variants, err := f.client.Streams(ctx, internalID, kind, episode)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, errMissingEpisode) {
			return nil, apperrors.NewInvalidRequestError("%v", err)
		}
		return nil, apperrors.New(apperrors.KindStreamListUnavailable, fetchOp, err)
	}

	config.LoggerFromContext(ctx).Debug().
		Str("internal_id", internalID).
		Int("count", len(variants)).
		Msg("Fetched stream variants")
	return variants, nil
}
