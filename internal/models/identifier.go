package models

// External ID kinds recognized by the scraper. Only these are ever written
// to the sink's unique-ID registry; the TMDB kind is the canonical one.
const (
	KindTMDB = "tmdb_id"
	KindIMDB = "imdb_id"
	KindTVDB = "tvdb_id"
)

// ValidExternalIDKinds lists the recognized external ID kinds.
var ValidExternalIDKinds = []string{KindTMDB, KindIMDB, KindTVDB}

// ParsedIdentifier is the canonical result of identifier resolution.
// The provider is always "tmdb": identifiers from secondary providers are
// converted before a ParsedIdentifier is produced.
type ParsedIdentifier struct {
	Provider        string `json:"provider"`
	ID              string `json:"id"`
	EpisodeGrouping string `json:"episode_grouping,omitempty"`
}

// NamedSeasonOverride carries a custom season name extracted from an NFO
// file. Adding numbered seasons to the sink erases custom season names, so
// these are returned side-channel for the caller to re-apply.
type NamedSeasonOverride struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// MediaID is an identifier parsed from a free-form token such as
// "tt1234567" or "tmdb/93405". No remote resolution is performed; Kind is
// one of the recognized external ID kinds.
type MediaID struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}
