// Package ratings enriches a show record with scores from rating sources
// beyond TMDB before the mapper folds them into the sink.
package ratings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/forbxy/tvmeta/internal/config"
	"github.com/forbxy/tvmeta/internal/fetch"
	"github.com/forbxy/tvmeta/internal/models"
)

const (
	defaultIMDBBaseURL  = "https://www.imdb.com/title/"
	defaultTraktBaseURL = "https://api.trakt.tv/shows/"
)

// Enricher fetches supplemental ratings. Every failure is logged at debug
// level and skipped; a rating source never blocks a scrape.
type Enricher struct {
	cfg          *config.Config
	imdbLoader   *fetch.Loader
	traktLoader  *fetch.Loader
	imdbBaseURL  string
	traktBaseURL string
}

// NewEnricher creates an Enricher using separate loaders so each source
// gets its own request metrics.
func NewEnricher(cfg *config.Config, imdbLoader, traktLoader *fetch.Loader) *Enricher {
	return &Enricher{
		cfg:          cfg,
		imdbLoader:   imdbLoader,
		traktLoader:  traktLoader,
		imdbBaseURL:  defaultIMDBBaseURL,
		traktBaseURL: defaultTraktBaseURL,
	}
}

// Attach fetches every configured non-TMDB rating source for the show's
// IMDb ID and merges the results into the record's ratings map. Records
// without an IMDb ID are returned untouched.
func (e *Enricher) Attach(ctx context.Context, rec models.Record) {
	imdbID := rec.Map("external_ids").Str("imdb_id")
	if imdbID == "" {
		return
	}

	logger := config.GetLogger()
	ratings, _ := rec["ratings"].(map[string]any)
	if ratings == nil {
		ratings = make(map[string]any)
		rec["ratings"] = ratings
	}

	for _, source := range e.cfg.RatingSources {
		switch source {
		case "imdb":
			rating, votes, err := e.imdbRating(ctx, imdbID)
			if err != nil {
				logger.Debug().Err(err).Str("imdb_id", imdbID).Msg("IMDb rating lookup failed")
				continue
			}
			ratings["imdb"] = map[string]any{"rating": rating, "votes": votes}
		case "trakt":
			rating, votes, err := e.traktRating(ctx, imdbID)
			if err != nil {
				logger.Debug().Err(err).Str("imdb_id", imdbID).Msg("Trakt rating lookup failed")
				continue
			}
			ratings["trakt"] = map[string]any{"rating": rating, "votes": votes}
		}
	}
}

// imdbRating scrapes the aggregate rating from the title page's JSON-LD
// metadata block.
func (e *Enricher) imdbRating(ctx context.Context, imdbID string) (float64, int, error) {
	body, err := e.imdbLoader.Text(ctx, e.imdbBaseURL+imdbID+"/")
	if err != nil {
		return 0, 0, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return 0, 0, err
	}

	payload := doc.Find(`script[type="application/ld+json"]`).First().Text()
	if payload == "" {
		return 0, 0, fmt.Errorf("no JSON-LD metadata on page for %s", imdbID)
	}

	var meta struct {
		AggregateRating struct {
			RatingValue float64 `json:"ratingValue"`
			RatingCount int     `json:"ratingCount"`
		} `json:"aggregateRating"`
	}
	if err := json.Unmarshal([]byte(payload), &meta); err != nil {
		return 0, 0, err
	}
	if meta.AggregateRating.RatingValue == 0 {
		return 0, 0, fmt.Errorf("no aggregate rating for %s", imdbID)
	}
	return meta.AggregateRating.RatingValue, meta.AggregateRating.RatingCount, nil
}

// traktRating queries the Trakt ratings endpoint, which accepts IMDb IDs
// as show slugs.
func (e *Enricher) traktRating(ctx context.Context, imdbID string) (float64, int, error) {
	headers := map[string]string{
		"Content-Type":      "application/json",
		"trakt-api-version": "2",
		"trakt-api-key":     e.cfg.Trakt.ClientID,
	}

	rec, err := e.traktLoader.JSON(ctx, e.traktBaseURL+imdbID+"/ratings", nil, headers)
	if err != nil {
		return 0, 0, err
	}
	rating := rec.Float("rating")
	if rating == 0 {
		return 0, 0, fmt.Errorf("no trakt rating for %s", imdbID)
	}
	return rating, rec.Int("votes"), nil
}
