// Package selector picks the single stream variant to play from a provider list.
package selector

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/Belphemur/StreamResolver/internal/apperrors"
	"github.com/Belphemur/StreamResolver/internal/models"
)

// Policy is a deterministic selection rule: a required container suffix on the
// URL path and a ranked list of quality labels consulted top-down.
type Policy struct {
	Container string
	Ranking   []models.Quality
}

// DefaultPolicy keeps MP4 variants and prefers 4K > 1080p > 720p > HDTV > 480p > 360p.
var DefaultPolicy = Policy{
	Container: ".mp4",
	Ranking:   models.QualityRanking,
}

// Select applies DefaultPolicy.
func Select(variants []models.StreamVariant) (models.StreamVariant, error) {
	return DefaultPolicy.Select(variants)
}

// Select returns the first playable variant carrying the best ranked label present.
// When no playable variant has a ranked label the first playable variant wins.
// Provider order breaks ties.
func (p Policy) Select(variants []models.StreamVariant) (models.StreamVariant, error) {
	playable := p.Playable(variants)
	if len(playable) == 0 {
		return models.StreamVariant{}, apperrors.New(apperrors.KindNoPlayableVariant, "selector.select",
			fmt.Errorf("none of %d variants is a valid %s URL", len(variants), p.Container))
	}

	for _, quality := range p.Ranking {
		if v, ok := lo.Find(playable, func(v models.StreamVariant) bool {
			return v.Quality == quality
		}); ok {
			return v, nil
		}
	}

	return playable[0], nil
}

// Playable filters variants down to absolute URLs whose path ends in the container suffix.
// Order is preserved; unparseable paths are dropped silently.
func (p Policy) Playable(variants []models.StreamVariant) []models.StreamVariant {
	return lo.Filter(variants, func(v models.StreamVariant, _ int) bool {
		return p.isPlayable(v.Path)
	})
}

func (p Policy) isPlayable(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return false
	}
	return strings.HasSuffix(u.Path, p.Container)
}
