// Package catalog talks to the streaming catalog: it searches titles,
// confirms candidates against a catalog ID and lists stream variants.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Belphemur/StreamResolver/internal/client"
	"github.com/Belphemur/StreamResolver/internal/models"
)

// Client defines the interface for querying the streaming catalog.
// Errors are returned as they come from the transport; classification happens
// in the Matcher and the Fetcher.
type Client interface {
	Search(ctx context.Context, title string, kind models.MediaKind, year string) ([]models.Candidate, error)
	Details(ctx context.Context, kind models.MediaKind, internalID string) (*models.CandidateDetail, error)
	Streams(ctx context.Context, internalID string, kind models.MediaKind, episode *models.EpisodeRef) ([]models.StreamVariant, error)
}

// catalogClient implements the Client interface
type catalogClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a catalog client rooted at baseURL.
func NewClient(httpClient *http.Client, baseURL string) Client {
	return &catalogClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type searchResponse struct {
	Data []json.RawMessage `json:"data"`
}

type searchEntry struct {
	ID flexibleID `json:"id"`
}

type detailResponse struct {
	Data *struct {
		TMDBID flexibleID `json:"tmdb_id"`
	} `json:"data"`
}

type streamsResponse struct {
	Data *struct {
		List []struct {
			Path        string `json:"path"`
			RealQuality string `json:"real_quality"`
			Quality     string `json:"quality"`
		} `json:"list"`
	} `json:"data"`
}

// Search returns candidates in provider order. Entries without an id are skipped.
func (c *catalogClient) Search(ctx context.Context, title string, kind models.MediaKind, year string) ([]models.Candidate, error) {
	query := url.Values{}
	query.Set("q", norm.NFC.String(strings.TrimSpace(title)))
	query.Set("type", kind.String())
	query.Set("year", year)

	var resp searchResponse
	if err := client.GetJSON(ctx, c.httpClient, c.baseURL+"/search?"+query.Encode(), &resp); err != nil {
		return nil, err
	}

	candidates := make([]models.Candidate, 0, len(resp.Data))
	for _, raw := range resp.Data {
		var item searchEntry
		if err := json.Unmarshal(raw, &item); err != nil || item.ID == "" {
			continue
		}
		candidates = append(candidates, models.Candidate{InternalID: string(item.ID)})
	}
	return candidates, nil
}

// Details fetches the detail record of a candidate. A record without data or
// without tmdb_id yields an empty ExternalID.
func (c *catalogClient) Details(ctx context.Context, kind models.MediaKind, internalID string) (*models.CandidateDetail, error) {
	endpoint := fmt.Sprintf("%s/details/%s/%s", c.baseURL, kind.String(), url.PathEscape(internalID))

	var resp detailResponse
	if err := client.GetJSON(ctx, c.httpClient, endpoint, &resp); err != nil {
		return nil, err
	}

	detail := &models.CandidateDetail{InternalID: internalID}
	if resp.Data != nil {
		detail.ExternalID = string(resp.Data.TMDBID)
	}
	return detail, nil
}

// Streams fetches the variant list. Provider order and duplicates are kept.
func (c *catalogClient) Streams(ctx context.Context, internalID string, kind models.MediaKind, episode *models.EpisodeRef) ([]models.StreamVariant, error) {
	endpoint, err := c.streamsURL(internalID, kind, episode)
	if err != nil {
		return nil, err
	}

	var resp streamsResponse
	if err := client.GetJSON(ctx, c.httpClient, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, errMissingData
	}

	variants := make([]models.StreamVariant, 0, len(resp.Data.List))
	for _, s := range resp.Data.List {
		variants = append(variants, models.StreamVariant{
			Path:          s.Path,
			ContainerHint: models.ContainerFromPath(s.Path),
			Quality:       models.Quality(s.RealQuality),
			QualityName:   s.Quality,
		})
	}
	return variants, nil
}

func (c *catalogClient) streamsURL(internalID string, kind models.MediaKind, episode *models.EpisodeRef) (string, error) {
	id := url.PathEscape(internalID)
	switch kind {
	case models.Movie:
		return fmt.Sprintf("%s/movie/%s", c.baseURL, id), nil
	case models.Series:
		if episode == nil {
			return "", errMissingEpisode
		}
		return fmt.Sprintf("%s/tv/%s/%s/%s", c.baseURL, id,
			strconv.Itoa(episode.Season), strconv.Itoa(episode.Episode)), nil
	default:
		return "", fmt.Errorf("unsupported media kind %q", kind)
	}
}
