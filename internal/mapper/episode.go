package mapper

import (
	"context"
	"strconv"

	"github.com/forbxy/tvmeta/internal/config"
	"github.com/forbxy/tvmeta/internal/models"
	"github.com/forbxy/tvmeta/internal/sink"
)

// MapEpisode writes episode metadata to the sink. Unnamed episodes get a
// generated "Episode N" title. Full mode adds the plot, duration, cast
// (regular season cast plus guest stars), external IDs, ratings, still
// images, and crew credits.
func (m *Mapper) MapEpisode(_ context.Context, info models.Record, s sink.VideoSink, full bool) {
	title := info.StrOr("name", "Episode "+strconv.Itoa(info.Int("episode_number")))
	s.SetTitle(title)
	s.SetSeason(info.Int("season_number"))
	s.SetEpisode(info.Int("episode_number"))
	s.SetMediaType("episode")
	airDate := info.Str("air_date")
	if airDate != "" {
		s.SetFirstAired(airDate)
	}

	if !full {
		return
	}

	if info.Has("overview") {
		plot := CleanPlot(info.Str("overview"))
		s.SetPlot(plot)
		s.SetPlotOutline(plot)
	}
	if airDate != "" {
		s.SetPremiered(airDate)
	}
	if runtime := info.Int("runtime"); runtime > 0 {
		s.AddVideoStream(runtime * 60)
	}

	cast := append([]models.Record{}, info.Slice("season_cast")...)
	cast = append(cast, info.Map("credits").Slice("guest_stars")...)
	m.setCast(cast, s)

	extIDs := models.Record{models.KindTMDB: info["id"]}
	for key, value := range info.Map("external_ids") {
		extIDs[key] = value
	}
	setUniqueIDs(extIDs, s)
	m.setRatings(info, s)

	for _, image := range info.Map("images").Slice("stills") {
		theURL, previewURL := m.imageURLs(image)
		if theURL == "" {
			continue
		}
		s.AddAvailableArtwork(sink.Artwork{URL: theURL, Type: "thumb", Preview: previewURL})
	}

	s.SetWriters(showCredits(info))
	s.SetDirectors(episodeDirectors(info))

	logger := config.GetLogger()
	logger.Debug().
		Int("season", info.Int("season_number")).
		Int("episode", info.Int("episode_number")).
		Str("title", title).
		Msg("Mapped episode information")
}
