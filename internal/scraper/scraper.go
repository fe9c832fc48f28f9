// Package scraper orchestrates a scrape: resolve an identifier, fetch the
// record, enrich its ratings, and map it into a sink item.
package scraper

import (
	"context"
	"errors"

	"github.com/forbxy/tvmeta/internal/apperrors"
	"github.com/forbxy/tvmeta/internal/config"
	"github.com/forbxy/tvmeta/internal/ids"
	"github.com/forbxy/tvmeta/internal/mapper"
	"github.com/forbxy/tvmeta/internal/metrics"
	"github.com/forbxy/tvmeta/internal/models"
	"github.com/forbxy/tvmeta/internal/sink"
)

// MetadataSource is the remote record source, implemented by tmdb.Client.
type MetadataSource interface {
	ShowDetails(ctx context.Context, showID string, epGrouping string) (models.Record, error)
	EpisodeDetails(ctx context.Context, showID string, season, episode int, epGrouping string) (models.Record, error)
	SearchShows(ctx context.Context, query string, year int) ([]models.Record, error)
}

// RatingEnricher merges supplemental rating sources into a show record.
type RatingEnricher interface {
	Attach(ctx context.Context, rec models.Record)
}

// ResolveResult is the outcome of scanning NFO text.
type ResolveResult struct {
	Identifier   *models.ParsedIdentifier     `json:"identifier,omitempty"`
	NamedSeasons []models.NamedSeasonOverride `json:"named_seasons,omitempty"`
}

// Scraper ties the pipeline together.
type Scraper struct {
	source   MetadataSource
	resolver *ids.Resolver
	enricher RatingEnricher
	mapper   *mapper.Mapper
}

// New creates a Scraper. The enricher is optional.
func New(source MetadataSource, resolver *ids.Resolver, enricher RatingEnricher, m *mapper.Mapper) *Scraper {
	return &Scraper{source: source, resolver: resolver, enricher: enricher, mapper: m}
}

// Resolve scans NFO text for a show identifier and named-season overrides.
func (s *Scraper) Resolve(ctx context.Context, text string) ResolveResult {
	identifier, namedSeasons := s.resolver.ResolveFromText(ctx, text)
	status := "ok"
	if identifier == nil {
		status = "not_found"
	}
	metrics.ScrapesTotal.WithLabelValues("resolve", status).Inc()
	return ResolveResult{Identifier: identifier, NamedSeasons: namedSeasons}
}

// GetShow fetches and maps a show. Full mode pulls the complete record
// with supplemental ratings; summary mode maps identification fields and
// the primary poster only.
func (s *Scraper) GetShow(ctx context.Context, showID string, epGrouping string, full bool) (*sink.Item, error) {
	rec, err := s.source.ShowDetails(ctx, showID, epGrouping)
	if err != nil {
		return nil, s.notFound("show", apperrors.NewShowNotFoundError(showID), err)
	}

	if full && s.enricher != nil {
		s.enricher.Attach(ctx, rec)
	}

	item := sink.NewItem()
	s.mapper.MapShow(ctx, rec, item, full)
	metrics.ScrapesTotal.WithLabelValues("show", "ok").Inc()
	return item, nil
}

// GetEpisode fetches and maps one episode of a show. A non-empty
// epGrouping addresses the episode by its custom-order numbering.
func (s *Scraper) GetEpisode(ctx context.Context, showID string, season, episode int, epGrouping string, full bool) (*sink.Item, error) {
	rec, err := s.source.EpisodeDetails(ctx, showID, season, episode, epGrouping)
	if err != nil {
		return nil, s.notFound("episode", apperrors.NewNotFoundError("episode", showID), err)
	}

	item := sink.NewItem()
	s.mapper.MapEpisode(ctx, rec, item, full)
	metrics.ScrapesTotal.WithLabelValues("episode", "ok").Inc()
	return item, nil
}

// Search maps each search result as a summary item.
func (s *Scraper) Search(ctx context.Context, query string, year int) ([]*sink.Item, error) {
	results, err := s.source.SearchShows(ctx, query, year)
	if err != nil {
		return nil, s.notFound("search", apperrors.NewNotFoundError("search results", query), err)
	}

	items := make([]*sink.Item, 0, len(results))
	for _, rec := range results {
		item := sink.NewItem()
		s.mapper.MapShow(ctx, rec, item, false)
		items = append(items, item)
	}
	metrics.ScrapesTotal.WithLabelValues("search", "ok").Inc()
	return items, nil
}

// notFound collapses the transport failure into the given not-found
// result: from the library's point of view a show it cannot fetch is a
// show that does not exist.
func (s *Scraper) notFound(kind string, fallback *apperrors.ErrNotFound, err error) error {
	logger := config.GetLogger()
	logger.Debug().Err(err).Str("kind", kind).Interface("id", fallback.ID).Msg("Lookup failed")

	if errors.Is(err, &apperrors.ErrNotFound{}) {
		metrics.ScrapesTotal.WithLabelValues(kind, "not_found").Inc()
		return err
	}
	var unavailable *apperrors.ErrUnavailable
	if errors.As(err, &unavailable) || errors.Is(err, context.DeadlineExceeded) {
		metrics.ScrapesTotal.WithLabelValues(kind, "not_found").Inc()
		return fallback
	}
	metrics.ScrapesTotal.WithLabelValues(kind, "error").Inc()
	return err
}
