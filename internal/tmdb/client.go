// Package tmdb fetches show and episode records from the TMDB API and
// normalizes them into the shape the mapper consumes.
package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/forbxy/tvmeta/internal/apperrors"
	"github.com/forbxy/tvmeta/internal/config"
	"github.com/forbxy/tvmeta/internal/fetch"
	"github.com/forbxy/tvmeta/internal/models"
)

// externalSources maps recognized ID kinds to the external_source values
// the find endpoint accepts.
var externalSources = map[string]string{
	models.KindIMDB: "imdb_id",
	models.KindTVDB: "tvdb_id",
}

// Client talks to the TMDB API.
type Client struct {
	loader  *fetch.Loader
	cfg     *config.Config
	baseURL string
}

// NewClient creates a TMDB API client.
func NewClient(cfg *config.Config, loader *fetch.Loader) *Client {
	baseURL := strings.TrimSuffix(cfg.TMDB.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultTMDBBaseURL
	}
	return &Client{loader: loader, cfg: cfg, baseURL: baseURL}
}

func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("api_key", c.cfg.TMDB.APIKey)
	params.Set("language", c.cfg.Language)
	return params
}

// imageLanguages builds the include_image_language filter: configured
// language first, then English, then untagged images.
func (c *Client) imageLanguages() string {
	lang := c.cfg.Language
	if len(lang) > 2 {
		lang = lang[:2]
	}
	if lang == "" || lang == "en" {
		return "en,null"
	}
	return lang + ",en,null"
}

// attachDefaultRating rewrites TMDB's flat vote fields into the ratings
// map the rating fold consumes.
func attachDefaultRating(rec models.Record) {
	rec["ratings"] = map[string]any{
		"themoviedb": map[string]any{
			"rating": rec.Float("vote_average"),
			"votes":  rec.Int("vote_count"),
		},
	}
}

// ShowDetails fetches the full show record: base details with credits,
// content ratings, external IDs, images, videos, and keywords appended,
// plus per-season images and credits. A non-empty epGrouping replaces the
// aired season list with the named episode group's custom order.
func (c *Client) ShowDetails(ctx context.Context, showID string, epGrouping string) (models.Record, error) {
	params := c.baseParams()
	params.Set("append_to_response", "credits,content_ratings,external_ids,images,videos,keywords")
	params.Set("include_image_language", c.imageLanguages())

	rec, err := c.loader.JSON(ctx, fmt.Sprintf("%s/tv/%s", c.baseURL, showID), params, nil)
	if err != nil {
		return nil, err
	}
	attachDefaultRating(rec)

	if epGrouping != "" {
		if err := c.applyEpisodeGroup(ctx, rec, epGrouping); err != nil {
			logger := config.GetLogger()
			logger.Debug().Err(err).Str("grouping", epGrouping).Msg("Episode group lookup failed, keeping aired order")
		}
	}

	c.attachSeasonDetails(ctx, showID, rec)
	return rec, nil
}

// groupSeasons fetches a custom episode order and renumbers it: each group
// becomes a season, episodes take their position inside the group, and the
// aired numbering survives under org_season_number and org_episode_number
// so episode details can still be fetched from the API.
func (c *Client) groupSeasons(ctx context.Context, epGrouping string) ([]models.Record, error) {
	group, err := c.loader.JSON(ctx, fmt.Sprintf("%s/tv/episode_group/%s", c.baseURL, epGrouping), c.baseParams(), nil)
	if err != nil {
		return nil, err
	}

	var seasons []models.Record
	for _, g := range group.Slice("groups") {
		order := g.Int("order")
		var episodes []any
		for i, episode := range g.Slice("episodes") {
			episode["org_season_number"] = episode["season_number"]
			episode["org_episode_number"] = episode["episode_number"]
			episode["season_number"] = order
			episode["episode_number"] = i + 1
			episodes = append(episodes, map[string]any(episode))
		}
		seasons = append(seasons, models.Record{
			"season_number": order,
			"name":          g.Str("name"),
			"episodes":      episodes,
		})
	}
	if len(seasons) == 0 {
		return nil, apperrors.NewNotFoundError("episode group", epGrouping)
	}
	return seasons, nil
}

// applyEpisodeGroup replaces the show's seasons with a custom episode
// order's groups.
func (c *Client) applyEpisodeGroup(ctx context.Context, rec models.Record, epGrouping string) error {
	seasons, err := c.groupSeasons(ctx, epGrouping)
	if err != nil {
		return err
	}
	rec["seasons"] = anySlice(seasons)
	return nil
}

// airedNumbers maps a grouped season/episode pair back to the aired
// numbering the episode endpoint expects.
func (c *Client) airedNumbers(ctx context.Context, epGrouping string, season, episode int) (int, int, error) {
	seasons, err := c.groupSeasons(ctx, epGrouping)
	if err != nil {
		return 0, 0, err
	}
	for _, s := range seasons {
		if s.Int("season_number") != season {
			continue
		}
		for _, ep := range s.Slice("episodes") {
			if ep.Int("episode_number") == episode {
				return ep.Int("org_season_number"), ep.Int("org_episode_number"), nil
			}
		}
	}
	return 0, 0, apperrors.NewNotFoundError("episode", fmt.Sprintf("%dx%d in group %s", season, episode, epGrouping))
}

// attachSeasonDetails augments every season with its images. A failed
// season lookup degrades to a season without artwork.
func (c *Client) attachSeasonDetails(ctx context.Context, showID string, rec models.Record) {
	logger := config.GetLogger()
	for _, season := range rec.Slice("seasons") {
		number := season.Int("season_number")
		params := c.baseParams()
		params.Set("append_to_response", "images")
		params.Set("include_image_language", c.imageLanguages())

		details, err := c.loader.JSON(ctx, fmt.Sprintf("%s/tv/%s/season/%d", c.baseURL, showID, number), params, nil)
		if err != nil {
			logger.Debug().Err(err).Int("season", number).Msg("Season lookup failed")
			continue
		}
		season["images"] = map[string]any(details.Map("images"))
	}
}

// EpisodeDetails fetches one episode's record with credits, external IDs,
// and still images appended, and attaches the season's regular cast under
// season_cast. With a non-empty epGrouping, season and episode carry the
// group's numbering: the aired pair is looked up through the group and the
// returned record keeps the numbers the caller asked with.
func (c *Client) EpisodeDetails(ctx context.Context, showID string, season, episode int, epGrouping string) (models.Record, error) {
	airedSeason, airedEpisode := season, episode
	if epGrouping != "" {
		var err error
		airedSeason, airedEpisode, err = c.airedNumbers(ctx, epGrouping, season, episode)
		if err != nil {
			return nil, err
		}
	}

	params := c.baseParams()
	params.Set("append_to_response", "credits,external_ids,images")
	params.Set("include_image_language", c.imageLanguages())

	rec, err := c.loader.JSON(ctx, fmt.Sprintf("%s/tv/%s/season/%d/episode/%d", c.baseURL, showID, airedSeason, airedEpisode), params, nil)
	if err != nil {
		return nil, err
	}
	attachDefaultRating(rec)

	if epGrouping != "" {
		rec["org_season_number"] = rec["season_number"]
		rec["org_episode_number"] = rec["episode_number"]
		rec["season_number"] = season
		rec["episode_number"] = episode
	}

	seasonDetails, err := c.loader.JSON(ctx, fmt.Sprintf("%s/tv/%s/season/%d", c.baseURL, showID, airedSeason), c.baseParamsWithCredits(), nil)
	if err == nil {
		rec["season_cast"] = anySlice(seasonDetails.Map("credits").Slice("cast"))
	}
	return rec, nil
}

func (c *Client) baseParamsWithCredits() url.Values {
	params := c.baseParams()
	params.Set("append_to_response", "credits")
	return params
}

// ConvertExternalID resolves an IMDb or TheTVDB identifier to a TMDB show
// ID through the find endpoint. An unknown source or an empty result set
// yields "" without an error.
func (c *Client) ConvertExternalID(ctx context.Context, externalSource string, externalID string) (string, error) {
	source, ok := externalSources[externalSource]
	if !ok {
		return "", nil
	}

	params := c.baseParams()
	params.Set("external_source", source)

	rec, err := c.loader.JSON(ctx, fmt.Sprintf("%s/find/%s", c.baseURL, externalID), params, nil)
	if err != nil {
		return "", err
	}
	results := rec.Slice("tv_results")
	if len(results) == 0 {
		return "", nil
	}
	id := results[0].Int("id")
	if id == 0 {
		return "", nil
	}
	return fmt.Sprintf("%d", id), nil
}

// SearchShows looks up shows by name. Year narrows to shows first aired
// that year; pass 0 to search all years.
func (c *Client) SearchShows(ctx context.Context, query string, year int) ([]models.Record, error) {
	params := c.baseParams()
	params.Set("query", query)
	if year > 0 {
		params.Set("first_air_date_year", fmt.Sprintf("%d", year))
	}

	rec, err := c.loader.JSON(ctx, c.baseURL+"/search/tv", params, nil)
	if err != nil {
		return nil, err
	}
	return rec.Slice("results"), nil
}

func anySlice(records []models.Record) []any {
	out := make([]any, 0, len(records))
	for _, r := range records {
		out = append(out, map[string]any(r))
	}
	return out
}
