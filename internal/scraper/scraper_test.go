package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/forbxy/tvmeta/internal/apperrors"
	"github.com/forbxy/tvmeta/internal/config"
	"github.com/forbxy/tvmeta/internal/ids"
	"github.com/forbxy/tvmeta/internal/mapper"
	"github.com/forbxy/tvmeta/internal/models"
)

type fakeSource struct {
	show     models.Record
	episode  models.Record
	results  []models.Record
	err      error
	grouping string
	tmdbIDs  map[string]string
}

func (f *fakeSource) ShowDetails(_ context.Context, showID string, epGrouping string) (models.Record, error) {
	f.grouping = epGrouping
	if f.err != nil {
		return nil, f.err
	}
	return f.show, nil
}

func (f *fakeSource) EpisodeDetails(_ context.Context, _ string, _, _ int, epGrouping string) (models.Record, error) {
	f.grouping = epGrouping
	if f.err != nil {
		return nil, f.err
	}
	return f.episode, nil
}

func (f *fakeSource) SearchShows(context.Context, string, int) ([]models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeSource) ConvertExternalID(_ context.Context, _ string, externalID string) (string, error) {
	return f.tmdbIDs[externalID], nil
}

type countingEnricher int

func (c *countingEnricher) Attach(context.Context, models.Record) { *c++ }

func testScraper(source *fakeSource, enricher RatingEnricher) *Scraper {
	cfg := &config.Config{Language: "en-US", CertCountry: "us", RatingSources: []string{"themoviedb"}}
	return New(source, ids.NewResolver(source), enricher, mapper.New(cfg, nil, nil))
}

func TestScraper_GetShow(t *testing.T) {
	source := &fakeSource{show: models.Record{
		"id":   float64(1399),
		"name": "Game of Thrones",
	}}
	var enricher countingEnricher
	s := testScraper(source, &enricher)

	item, err := s.GetShow(context.Background(), "1399", "grp1", true)
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if item.Title != "Game of Thrones" {
		t.Errorf("Unexpected title: %q", item.Title)
	}
	if source.grouping != "grp1" {
		t.Errorf("Episode grouping not forwarded, got %q", source.grouping)
	}
	if enricher != 1 {
		t.Errorf("Expected 1 enrichment call, got %d", enricher)
	}
}

func TestScraper_GetShow_SummarySkipsEnrichment(t *testing.T) {
	source := &fakeSource{show: models.Record{"id": float64(1), "name": "X"}}
	var enricher countingEnricher
	s := testScraper(source, &enricher)

	if _, err := s.GetShow(context.Background(), "1", "", false); err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if enricher != 0 {
		t.Errorf("Summary scrape must not enrich ratings, got %d calls", enricher)
	}
}

func TestScraper_GetShow_UnavailableBecomesNotFound(t *testing.T) {
	source := &fakeSource{err: apperrors.NewUnavailableError("https://api.example", errors.New("boom"))}
	s := testScraper(source, nil)

	_, err := s.GetShow(context.Background(), "1399", "", true)
	if !errors.Is(err, &apperrors.ErrNotFound{}) {
		t.Fatalf("Expected ErrNotFound, got %T: %v", err, err)
	}
	if got := err.Error(); got != "show with ID 1399 not found" {
		t.Errorf("Expected show not-found message, got %q", got)
	}
}

func TestScraper_GetEpisode(t *testing.T) {
	source := &fakeSource{episode: models.Record{
		"id":             float64(63056),
		"name":           "Winter Is Coming",
		"season_number":  float64(1),
		"episode_number": float64(1),
	}}
	s := testScraper(source, nil)

	item, err := s.GetEpisode(context.Background(), "1399", 1, 1, "grp1", true)
	if err != nil {
		t.Fatalf("GetEpisode failed: %v", err)
	}
	if item.Title != "Winter Is Coming" || item.MediaType != "episode" {
		t.Errorf("Unexpected item: %+v", item)
	}
	if source.grouping != "grp1" {
		t.Errorf("Episode grouping not forwarded, got %q", source.grouping)
	}
}

func TestScraper_Search(t *testing.T) {
	source := &fakeSource{results: []models.Record{
		{"id": float64(1399), "name": "Game of Thrones", "poster_path": "/p.jpg"},
		{"id": float64(1402), "name": "The Walking Dead"},
	}}
	s := testScraper(source, nil)

	items, err := s.Search(context.Background(), "the", 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Game of Thrones" || items[1].Title != "The Walking Dead" {
		t.Errorf("Unexpected items: %v, %v", items[0], items[1])
	}
	if len(items[1].Genres) != 0 {
		t.Error("Search results must be summaries")
	}
}

func TestScraper_Resolve(t *testing.T) {
	source := &fakeSource{tmdbIDs: map[string]string{"tt0944947": "1399"}}
	s := testScraper(source, nil)

	result := s.Resolve(context.Background(), `https://www.imdb.com/title/tt0944947/
<namedseason number="1">Book One</namedseason>`)

	if result.Identifier == nil || result.Identifier.ID != "1399" {
		t.Fatalf("Unexpected identifier: %+v", result.Identifier)
	}
	if len(result.NamedSeasons) != 1 || result.NamedSeasons[0].Name != "Book One" {
		t.Errorf("Unexpected named seasons: %v", result.NamedSeasons)
	}
}
