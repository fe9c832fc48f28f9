package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forbxy/tvmeta/internal/apperrors"
	"github.com/forbxy/tvmeta/internal/config"
	"github.com/forbxy/tvmeta/internal/ids"
	"github.com/forbxy/tvmeta/internal/mapper"
	"github.com/forbxy/tvmeta/internal/models"
	"github.com/forbxy/tvmeta/internal/scraper"
	"github.com/forbxy/tvmeta/internal/sink"
)

type fakeSource struct {
	shows           map[string]models.Record
	tmdbIDs         map[string]string
	episodeGrouping string
}

func (f *fakeSource) ShowDetails(_ context.Context, showID string, _ string) (models.Record, error) {
	if show, ok := f.shows[showID]; ok {
		return show, nil
	}
	return nil, apperrors.NewUnavailableError("tv/"+showID, nil)
}

func (f *fakeSource) EpisodeDetails(_ context.Context, showID string, season, episode int, epGrouping string) (models.Record, error) {
	f.episodeGrouping = epGrouping
	if _, ok := f.shows[showID]; !ok {
		return nil, apperrors.NewUnavailableError("tv/"+showID, nil)
	}
	return models.Record{
		"id":             float64(63056),
		"name":           "Winter Is Coming",
		"season_number":  float64(season),
		"episode_number": float64(episode),
	}, nil
}

func (f *fakeSource) SearchShows(_ context.Context, query string, _ int) ([]models.Record, error) {
	var results []models.Record
	for _, show := range f.shows {
		if strings.Contains(strings.ToLower(show.Str("name")), strings.ToLower(query)) {
			results = append(results, show)
		}
	}
	return results, nil
}

func (f *fakeSource) ConvertExternalID(_ context.Context, _ string, externalID string) (string, error) {
	return f.tmdbIDs[externalID], nil
}

func newTestServerWithSource() (*httptest.Server, *fakeSource) {
	cfg := &config.Config{Language: "en-US", CertCountry: "us", RatingSources: []string{"themoviedb"}}
	source := &fakeSource{
		shows: map[string]models.Record{
			"1399": {"id": float64(1399), "name": "Game of Thrones"},
		},
		tmdbIDs: map[string]string{"tt0944947": "1399"},
	}
	s := scraper.New(source, ids.NewResolver(source), nil, mapper.New(cfg, nil, nil))
	return httptest.NewServer(New(cfg, s).Handler()), source
}

func newTestServer() *httptest.Server {
	server, _ := newTestServerWithSource()
	return server
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: expected status %d, got %d", url, wantStatus, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("GET %s: invalid JSON: %v", url, err)
		}
	}
}

func TestServer_Show(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	var item sink.Item
	getJSON(t, server.URL+"/api/v1/shows/1399", http.StatusOK, &item)
	if item.Title != "Game of Thrones" || item.MediaType != "tvshow" {
		t.Errorf("Unexpected item: %+v", item)
	}
}

func TestServer_ShowNotFound(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	getJSON(t, server.URL+"/api/v1/shows/999999", http.StatusNotFound, nil)
}

func TestServer_Episode(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	var item sink.Item
	getJSON(t, server.URL+"/api/v1/shows/1399/seasons/1/episodes/1", http.StatusOK, &item)
	if item.Title != "Winter Is Coming" || item.Season != 1 || item.Episode != 1 {
		t.Errorf("Unexpected item: %+v", item)
	}
}

func TestServer_EpisodeGroupingForwarded(t *testing.T) {
	server, source := newTestServerWithSource()
	defer server.Close()

	var item sink.Item
	getJSON(t, server.URL+"/api/v1/shows/1399/seasons/1/episodes/2?grouping=grp1", http.StatusOK, &item)
	if source.episodeGrouping != "grp1" {
		t.Errorf("Episode grouping not forwarded, got %q", source.episodeGrouping)
	}
}

func TestServer_EpisodeBadNumbers(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	getJSON(t, server.URL+"/api/v1/shows/1399/seasons/one/episodes/1", http.StatusBadRequest, nil)
}

func TestServer_Resolve(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	nfo := `<tvshow>
<namedseason number="1">Book One</namedseason>
https://www.imdb.com/title/tt0944947/
</tvshow>`

	resp, err := http.Post(server.URL+"/api/v1/resolve", "text/plain", strings.NewReader(nfo))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result scraper.ResolveResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if result.Identifier == nil || result.Identifier.ID != "1399" {
		t.Errorf("Unexpected identifier: %+v", result.Identifier)
	}
	if len(result.NamedSeasons) != 1 || result.NamedSeasons[0].Name != "Book One" {
		t.Errorf("Unexpected named seasons: %v", result.NamedSeasons)
	}
}

func TestServer_MediaID(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	var mediaID models.MediaID
	getJSON(t, server.URL+"/api/v1/media-id?token=tmdb/1399", http.StatusOK, &mediaID)
	if mediaID.Kind != models.KindTMDB || mediaID.Value != "1399" {
		t.Errorf("Unexpected media ID: %+v", mediaID)
	}

	getJSON(t, server.URL+"/api/v1/media-id?token=not-an-id", http.StatusNotFound, nil)
	getJSON(t, server.URL+"/api/v1/media-id", http.StatusBadRequest, nil)
}

func TestServer_Search(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	var body struct {
		Results []sink.Item `json:"results"`
	}
	getJSON(t, server.URL+"/api/v1/search?query=thrones", http.StatusOK, &body)
	if len(body.Results) != 1 || body.Results[0].Title != "Game of Thrones" {
		t.Errorf("Unexpected results: %+v", body.Results)
	}

	getJSON(t, server.URL+"/api/v1/search", http.StatusBadRequest, nil)
}

func TestServer_Healthz(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}
