package mapper

import (
	"strconv"

	"github.com/forbxy/tvmeta/internal/models"
	"github.com/forbxy/tvmeta/internal/sink"
)

// setRatings walks the configured rating sources in priority order. The
// first source with a positive rating becomes the default; later positive
// sources are still registered so the library can switch between them.
func (m *Mapper) setRatings(info models.Record, s sink.VideoSink) {
	ratings := info.Map("ratings")
	first := true
	for _, source := range m.cfg.RatingSources {
		entry := ratings.Map(source)
		rating := entry.Float("rating")
		votes := entry.Int("votes")
		if rating > 0 {
			s.SetRating(rating, votes, source, first)
			first = false
		}
	}
}

// setUniqueIDs registers recognized external IDs with the sink and returns
// the registered values keyed by short provider name ("tmdb", "imdb",
// "tvdb"). The TMDB ID is the default.
func setUniqueIDs(extIDs models.Record, s sink.VideoSink) map[string]string {
	registered := make(map[string]string)
	for _, kind := range models.ValidExternalIDKinds {
		if !extIDs.Has(kind) {
			continue
		}
		value := extIDs.Str(kind)
		if value == "" {
			// Numeric IDs come through as floats after JSON decoding.
			if n := extIDs.Int(kind); n != 0 {
				value = strconv.Itoa(n)
			}
		}
		if value == "" || value == "0" {
			continue
		}
		short := kind[:len(kind)-len("_id")]
		s.SetUniqueID(value, short, kind == models.KindTMDB)
		registered[short] = value
	}
	return registered
}
