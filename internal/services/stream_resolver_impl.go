package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Belphemur/StreamResolver/internal/apperrors"
	"github.com/Belphemur/StreamResolver/internal/config"
	"github.com/Belphemur/StreamResolver/internal/metadata"
	"github.com/Belphemur/StreamResolver/internal/metrics"
	"github.com/Belphemur/StreamResolver/internal/models"
	"github.com/Belphemur/StreamResolver/internal/reporting"
	"github.com/Belphemur/StreamResolver/internal/selector"
)

// Operation names used in logs and metrics.
const (
	OperationResolveMovie   = "resolve_movie"
	OperationResolveEpisode = "resolve_episode"
	OperationListVariants   = "list_variants"
)

// DefaultStreamResolver implements StreamResolver as the strictly sequential
// Resolver -> Matcher -> Fetcher -> Selector pipeline. It keeps no state
// between calls.
type DefaultStreamResolver struct {
	metadata metadata.Resolver
	matcher  Matcher
	fetcher  VariantFetcher
	policy   selector.Policy
}

// NewStreamResolver creates a StreamResolver using selector.DefaultPolicy.
func NewStreamResolver(resolver metadata.Resolver, matcher Matcher, fetcher VariantFetcher) StreamResolver {
	return &DefaultStreamResolver{
		metadata: resolver,
		matcher:  matcher,
		fetcher:  fetcher,
		policy:   selector.DefaultPolicy,
	}
}

func (s *DefaultStreamResolver) ResolveMovie(ctx context.Context, catalogID string) (*models.SelectedStream, error) {
	return s.Resolve(ctx, models.ResolveRequest{CatalogID: catalogID, Kind: models.Movie})
}

func (s *DefaultStreamResolver) ResolveEpisode(ctx context.Context, catalogID string, season, episode int) (*models.SelectedStream, error) {
	return s.Resolve(ctx, models.ResolveRequest{
		CatalogID: catalogID,
		Kind:      models.Series,
		Episode:   &models.EpisodeRef{Season: season, Episode: episode},
	})
}

func (s *DefaultStreamResolver) Resolve(ctx context.Context, req models.ResolveRequest) (stream *models.SelectedStream, err error) {
	operation := OperationResolveMovie
	if req.Kind == models.Series {
		operation = OperationResolveEpisode
	}
	ctx, finish := s.begin(ctx, operation, req)
	defer func() { finish(err) }()

	media, variants, err := s.variants(ctx, req)
	if err != nil {
		return nil, err
	}

	variant, err := s.policy.Select(variants)
	if err != nil {
		return nil, err
	}

	return &models.SelectedStream{
		URL:     variant.Path,
		Title:   req.DisplayTitle(media.Title),
		Year:    media.Year,
		Quality: variant.Quality,
	}, nil
}

func (s *DefaultStreamResolver) ListVariants(ctx context.Context, req models.ResolveRequest) (variants []models.StreamVariant, err error) {
	ctx, finish := s.begin(ctx, OperationListVariants, req)
	defer func() { finish(err) }()

	_, variants, err = s.variants(ctx, req)
	return variants, err
}

// variants validates req and runs every stage up to the variant list.
func (s *DefaultStreamResolver) variants(ctx context.Context, req models.ResolveRequest) (*models.CanonicalMedia, []models.StreamVariant, error) {
	if err := Validate(req); err != nil {
		return nil, nil, err
	}

	media, err := s.metadata.Resolve(ctx, req.CatalogID, req.Kind)
	if err != nil {
		return nil, nil, err
	}

	internalID, err := s.matcher.Match(ctx, media)
	if err != nil {
		return nil, nil, err
	}

	variants, err := s.fetcher.FetchVariants(ctx, internalID, req.Kind, req.Episode)
	if err != nil {
		return nil, nil, err
	}
	return media, variants, nil
}

// begin attaches a request-scoped logger to ctx and returns the function
// that records the outcome.
func (s *DefaultStreamResolver) begin(ctx context.Context, operation string, req models.ResolveRequest) (context.Context, func(error)) {
	start := time.Now()
	logCtx := config.LoggerFromContext(ctx).With().
		Str("request_id", uuid.NewString()).
		Str("operation", operation).
		Str("catalog_id", req.CatalogID).
		Str("kind", req.Kind.String())
	if req.Episode != nil {
		logCtx = logCtx.Str("episode", req.Episode.Label())
	}
	logger := logCtx.Logger()
	ctx = logger.WithContext(ctx)

	return ctx, func(err error) {
		outcome := Outcome(err)
		metrics.ObserveResolution(operation, outcome, start)

		if err == nil {
			logger.Info().Dur("duration", time.Since(start)).Msg("Resolution succeeded")
			return
		}
		event := logger.Warn()
		if reporting.ShouldReport(err) {
			event = logger.Error()
		}
		event.Err(err).Str("outcome", outcome).Dur("duration", time.Since(start)).Msg("Resolution failed")
		reporting.Capture(operation, err)
	}
}

// Validate checks req without any I/O.
func Validate(req models.ResolveRequest) error {
	if strings.TrimSpace(req.CatalogID) == "" {
		return apperrors.NewInvalidRequestError("catalog id is required")
	}
	switch req.Kind {
	case models.Movie:
		return nil
	case models.Series:
		if req.Episode == nil {
			return apperrors.NewInvalidRequestError("season and episode are required for series")
		}
		if req.Episode.Season < 0 {
			return apperrors.NewInvalidRequestError("season must not be negative, got %d", req.Episode.Season)
		}
		if req.Episode.Episode < 1 {
			return apperrors.NewInvalidRequestError("episode must be at least 1, got %d", req.Episode.Episode)
		}
		return nil
	default:
		return apperrors.NewInvalidRequestError("unsupported media kind %q", req.Kind)
	}
}

// Outcome labels err for metrics: "success", the error kind name, "canceled" or "error".
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	if kind, ok := apperrors.KindOf(err); ok {
		return kind.String()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "error"
}
