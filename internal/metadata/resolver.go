// Package metadata looks up the canonical title and year of a catalog ID.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Belphemur/StreamResolver/internal/apperrors"
	"github.com/Belphemur/StreamResolver/internal/cache"
	"github.com/Belphemur/StreamResolver/internal/client"
	"github.com/Belphemur/StreamResolver/internal/config"
	"github.com/Belphemur/StreamResolver/internal/models"
)

const op = "metadata.resolve"

// Resolver fetches canonical media information from the metadata provider.
type Resolver interface {
	Resolve(ctx context.Context, catalogID string, kind models.MediaKind) (*models.CanonicalMedia, error)
}

// tmdbResolver implements Resolver against a TMDB-compatible API
type tmdbResolver struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	store      cache.Cache
}

// NewResolver creates a Resolver. store may be nil, in which case every call
// goes to the provider.
func NewResolver(httpClient *http.Client, baseURL, apiKey string, store cache.Cache) Resolver {
	return &tmdbResolver{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		store:      store,
	}
}

// NewResolverFromConfig wires the resolver to the metadata section of cfg.
func NewResolverFromConfig(cfg *config.Config, httpClient *http.Client, store cache.Cache) Resolver {
	return NewResolver(httpClient, cfg.Metadata.BaseURL, cfg.Metadata.APIKey, store)
}

// providerRecord holds the fields read from a movie or tv record.
type providerRecord struct {
	Title        string `json:"title"`
	Name         string `json:"name"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
}

func (r *tmdbResolver) Resolve(ctx context.Context, catalogID string, kind models.MediaKind) (*models.CanonicalMedia, error) {
	logger := config.LoggerFromContext(ctx)

	if kind != models.Movie && kind != models.Series {
		return nil, apperrors.NewInvalidRequestError("unsupported media kind %q", kind)
	}
	if strings.TrimSpace(catalogID) == "" {
		return nil, apperrors.NewInvalidRequestError("catalog id is required")
	}

	key := cacheKey(kind, catalogID)
	if media, ok := r.fromCache(key); ok {
		logger.Debug().Str("catalog_id", catalogID).Str("kind", kind.String()).Msg("Metadata served from cache")
		return media, nil
	}

	var record providerRecord
	err := client.GetJSON(ctx, r.httpClient, r.recordURL(catalogID, kind), &record)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, client.ErrDecodeResponse) {
			return nil, apperrors.New(apperrors.KindMalformedMetadata, op, err)
		}
		logger.Warn().Err(err).Str("catalog_id", catalogID).Str("kind", kind.String()).Msg("Metadata lookup failed")
		return nil, apperrors.New(apperrors.KindMetadataNotFound, op, err)
	}

	media, err := canonicalize(catalogID, kind, record)
	if err != nil {
		return nil, err
	}

	r.toCache(key, media)
	logger.Debug().
		Str("catalog_id", catalogID).
		Str("kind", kind.String()).
		Str("title", media.Title).
		Str("year", media.Year).
		Msg("Resolved metadata")
	return media, nil
}

func (r *tmdbResolver) recordURL(catalogID string, kind models.MediaKind) string {
	u := fmt.Sprintf("%s/%s/%s", r.baseURL, kind.String(), url.PathEscape(catalogID))
	if r.apiKey != "" {
		u += "?" + url.Values{"api_key": {r.apiKey}}.Encode()
	}
	return u
}

// canonicalize picks title/name and release_date/first_air_date by kind.
func canonicalize(catalogID string, kind models.MediaKind, record providerRecord) (*models.CanonicalMedia, error) {
	title, date := record.Title, record.ReleaseDate
	if kind == models.Series {
		title, date = record.Name, record.FirstAirDate
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.New(apperrors.KindMalformedMetadata, op, errors.New("title is missing"))
	}
	year, err := yearOf(date)
	if err != nil {
		return nil, apperrors.New(apperrors.KindMalformedMetadata, op, err)
	}

	return &models.CanonicalMedia{
		CatalogID: catalogID,
		Kind:      kind,
		Title:     title,
		Year:      year,
	}, nil
}

// yearOf extracts the 4 digit year of a YYYY-MM-DD date.
func yearOf(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return "", errors.New("date is missing")
	}
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", date, err)
	}
	return fmt.Sprintf("%04d", t.Year()), nil
}

func cacheKey(kind models.MediaKind, catalogID string) string {
	return "metadata:" + kind.String() + ":" + catalogID
}

func (r *tmdbResolver) fromCache(key string) (*models.CanonicalMedia, bool) {
	if r.store == nil {
		return nil, false
	}
	raw, ok := r.store.Get(key)
	if !ok {
		return nil, false
	}
	var media models.CanonicalMedia
	if err := json.Unmarshal(raw, &media); err != nil {
		return nil, false
	}
	return &media, true
}

func (r *tmdbResolver) toCache(key string, media *models.CanonicalMedia) {
	if r.store == nil {
		return
	}
	raw, err := json.Marshal(media)
	if err != nil {
		return
	}
	r.store.Set(key, raw)
}
