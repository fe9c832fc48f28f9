// Package mapper converts raw TMDB payloads into sink setter calls. Every
// lookup tolerates missing fields: an absent value means the corresponding
// setter is skipped, never an error.
package mapper

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/forbxy/tvmeta/internal/config"
	"github.com/forbxy/tvmeta/internal/models"
	"github.com/forbxy/tvmeta/internal/sink"
)

// InitialsProvider computes a sort key prefix (pinyin initials) for a
// title. Implementations return "" when the service is unavailable so
// mapping proceeds without sort-key decoration.
type InitialsProvider interface {
	Initials(ctx context.Context, text string) string
}

// Mapper writes show and episode metadata into a VideoSink according to
// the configured options.
type Mapper struct {
	cfg      *config.Config
	initials InitialsProvider
	checker  TrailerChecker
}

// New creates a Mapper. Both the initials provider and the trailer checker
// are optional; nil disables the corresponding feature.
func New(cfg *config.Config, initials InitialsProvider, checker TrailerChecker) *Mapper {
	return &Mapper{cfg: cfg, initials: initials, checker: checker}
}

// MapShow writes show metadata to the sink. In summary mode (full=false)
// only the identification fields and the primary poster are written; full
// mode adds genres, tags, studios, certification, credits, trailer,
// artwork, seasons, cast, and ratings.
func (m *Mapper) MapShow(ctx context.Context, info models.Record, s sink.VideoSink, full bool) {
	logger := config.GetLogger()

	originalName := info.Str("original_name")
	showName := info.Str("name")
	if m.cfg.KeepOriginalTitle && originalName != "" {
		showName = originalName
	}

	if m.initials != nil {
		if initials := m.initials.Initials(ctx, showName); initials != "" {
			if m.cfg.WriteInitials {
				s.SetSortTitle(initials + "|" + showName)
			}
			if m.cfg.WriteInitialsOriginalTitle {
				if originalName != "" {
					originalName = initials + "|" + showName + "|" + originalName
				} else {
					originalName = initials + "|" + showName
				}
			}
		}
	}

	plot := CleanPlot(info.Str("overview"))
	s.SetTitle(showName)
	s.SetOriginalTitle(originalName)
	s.SetTvShowTitle(showName)
	s.SetPlot(plot)
	s.SetPlotOutline(plot)
	s.SetMediaType("tvshow")

	extIDs := models.Record{models.KindTMDB: info["id"]}
	for key, value := range info.Map("external_ids") {
		extIDs[key] = value
	}
	guideIDs := setUniqueIDs(extIDs, s)
	if guide, err := json.Marshal(guideIDs); err == nil {
		s.SetEpisodeGuide(string(guide))
	}

	if firstAirDate := info.Str("first_air_date"); len(firstAirDate) >= 4 {
		if year, err := strconv.Atoi(firstAirDate[:4]); err == nil {
			s.SetYear(year)
		}
		s.SetPremiered(firstAirDate)
	}

	if !full {
		if poster := info.Str("poster_path"); poster != "" && !strings.HasSuffix(poster, ".svg") {
			s.AddAvailableArtwork(sink.Artwork{
				URL:     m.cfg.Image.BaseURL + poster,
				Type:    "poster",
				Preview: m.cfg.Image.PreviewURL + poster,
			})
		}
		logger.Debug().Str("show", showName).Msg("Mapped show summary")
		return
	}

	s.SetTvShowStatus(info.Str("status"))
	s.SetGenres(names(info.Slice("genres")))

	var tags []string
	if m.cfg.SaveTags {
		tags = append(tags, names(info.Map("keywords").Slice("results"))...)
	}
	tags = append(tags, countryTags(info.Strings("origin_country"))...)
	if len(tags) > 0 {
		s.SetTags(tags)
	}

	var network models.Record
	var country string
	if networks := info.Slice("networks"); len(networks) > 0 {
		network = networks[0]
		country = network.Str("origin_country")
	}
	if network != nil && country != "" && m.cfg.StudioCountry {
		s.SetStudios([]string{fmt.Sprintf("%s (%s)", network.Str("name"), country)})
	} else if network != nil {
		s.SetStudios([]string{network.Str("name")})
	}
	if country != "" {
		s.SetCountries([]string{country})
	}

	m.setCertification(info, s)
	s.SetWriters(showCredits(info))

	if m.cfg.Trailer.Enabled {
		if trailer := m.pickTrailer(ctx, info.Map("videos").Slice("results")); trailer != "" {
			s.SetTrailer(trailer)
		}
	}

	m.setShowArtwork(info, s)
	m.addSeasonInfo(info, s)
	m.setCast(info.Map("credits").Slice("cast"), s)
	m.setRatings(info, s)
	logger.Debug().Str("show", showName).Msg("Mapped full show information")
}

// setCertification picks the content rating for the configured country,
// falling back to the US rating when the country has none.
func (m *Mapper) setCertification(info models.Record, s sink.VideoSink) {
	contentRatings := info.Map("content_ratings").Slice("results")
	if len(contentRatings) == 0 {
		return
	}
	var mpaa, backup string
	for _, contentRating := range contentRatings {
		iso := strings.ToLower(contentRating.Str("iso_3166_1"))
		if iso == "us" {
			backup = contentRating.Str("rating")
		}
		if iso == strings.ToLower(m.cfg.CertCountry) {
			mpaa = contentRating.Str("rating")
		}
	}
	if mpaa == "" {
		mpaa = backup
	}
	if mpaa != "" {
		s.SetMpaa(m.cfg.CertPrefix + mpaa)
	}
}
