package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/mo"
	"github.com/sourcegraph/conc/pool"

	"github.com/Belphemur/StreamResolver/internal/apperrors"
	"github.com/Belphemur/StreamResolver/internal/config"
	"github.com/Belphemur/StreamResolver/internal/metrics"
	"github.com/Belphemur/StreamResolver/internal/models"
)

const matchOp = "catalog.match"

// Matcher maps canonical media onto the streaming catalog's internal ID.
type Matcher struct {
	client      Client
	concurrency int
}

// NewMatcher creates a Matcher. concurrency bounds parallel detail fetches;
// 1 or less checks candidates one at a time.
func NewMatcher(client Client, concurrency int) *Matcher {
	return &Matcher{client: client, concurrency: concurrency}
}

// Match searches the catalog for media and returns the internal ID of the
// first candidate, in search order, whose detail record carries media.CatalogID.
// A candidate whose detail fetch fails is treated as not matching.
func (m *Matcher) Match(ctx context.Context, media *models.CanonicalMedia) (string, error) {
	logger := config.LoggerFromContext(ctx)

	candidates, err := m.client.Search(ctx, media.Title, media.Kind, media.Year)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", apperrors.New(apperrors.KindNoSearchResults, matchOp, err)
	}
	if len(candidates) == 0 {
		return "", apperrors.New(apperrors.KindNoSearchResults, matchOp,
			fmt.Errorf("no results for %q (%s)", media.Title, media.Year))
	}
	logger.Debug().Str("title", media.Title).Int("count", len(candidates)).Msg("Catalog search returned candidates")

	var internalID string
	var found bool
	if m.concurrency > 1 && len(candidates) > 1 {
		internalID, found = firstMatch(m.checkAll(ctx, media, candidates), candidates)
	} else {
		for _, candidate := range candidates {
			if ctx.Err() != nil {
				break
			}
			if ok, _ := m.check(ctx, media, candidate).Get(); ok {
				internalID, found = candidate.InternalID, true
				break
			}
		}
	}

	if found {
		logger.Debug().Str("catalog_id", media.CatalogID).Str("internal_id", internalID).Msg("Matched catalog candidate")
		return internalID, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	return "", apperrors.New(apperrors.KindNoMatchingMedia, matchOp,
		fmt.Errorf("none of %d candidates carries id %s", len(candidates), media.CatalogID))
}

// checkAll fetches every candidate's detail on a bounded pool. results[i]
// belongs to candidates[i] whatever order the fetches complete in.
func (m *Matcher) checkAll(ctx context.Context, media *models.CanonicalMedia, candidates []models.Candidate) []mo.Result[bool] {
	results := make([]mo.Result[bool], len(candidates))
	p := pool.New().WithMaxGoroutines(m.concurrency)
	for i, candidate := range candidates {
		p.Go(func() {
			results[i] = m.check(ctx, media, candidate)
		})
	}
	p.Wait()
	return results
}

// firstMatch scans results in index order.
func firstMatch(results []mo.Result[bool], candidates []models.Candidate) (string, bool) {
	for i, r := range results {
		if ok, err := r.Get(); err == nil && ok {
			return candidates[i].InternalID, true
		}
	}
	return "", false
}

// check reports whether candidate's detail record embeds media.CatalogID.
// The IDs are compared as literal text.
func (m *Matcher) check(ctx context.Context, media *models.CanonicalMedia, candidate models.Candidate) mo.Result[bool] {
	logger := config.LoggerFromContext(ctx)

	detail, err := m.client.Details(ctx, media.Kind, candidate.InternalID)
	if err != nil {
		metrics.CandidateChecksTotal.WithLabelValues(metrics.CandidateError).Inc()
		if !errors.Is(err, context.Canceled) {
			logger.Debug().Err(err).Str("candidate_id", candidate.InternalID).Msg("Candidate detail fetch failed, skipping")
		}
		return mo.Err[bool](err)
	}

	matched := detail.ExternalID != "" && detail.ExternalID == media.CatalogID
	if matched {
		metrics.CandidateChecksTotal.WithLabelValues(metrics.CandidateMatch).Inc()
	} else {
		metrics.CandidateChecksTotal.WithLabelValues(metrics.CandidateMismatch).Inc()
	}
	return mo.Ok(matched)
}
