package ids

import (
	"context"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/forbxy/tvmeta/internal/config"
	"github.com/forbxy/tvmeta/internal/models"
)

// showIDPattern associates a URL regexp with the external-ID kind its
// capture yields. Patterns are tried in order: TMDB links come first
// because every other provider's ID costs an extra lookup to convert.
type showIDPattern struct {
	re   *regexp.Regexp
	kind string
}

var showIDPatterns = []showIDPattern{
	{regexp.MustCompile(`(?i)themoviedb\.org/tv/(\d+).*/episode_group/(.*)`), models.KindTMDB},
	{regexp.MustCompile(`(?i)themoviedb\.org/tv/(\d+)`), models.KindTMDB},
	{regexp.MustCompile(`(?i)themoviedb\.org/./tv/(\d+)`), models.KindTMDB},
	{regexp.MustCompile(`(?i)tmdb\.org/./tv/(\d+)`), models.KindTMDB},
	{regexp.MustCompile(`(?i)imdb\.com/.+/(tt\d+)`), models.KindIMDB},
	{regexp.MustCompile(`(?i)thetvdb\.com.+&id=(\d+)`), models.KindTVDB},
	{regexp.MustCompile(`(?i)thetvdb\.com/series/(\d+)`), models.KindTVDB},
	{regexp.MustCompile(`(?i)thetvdb\.com/api/.*series/(\d+)`), models.KindTVDB},
	{regexp.MustCompile(`(?i)thetvdb\.com/.*?"id":(\d+)`), models.KindTVDB},
}

// namedSeasonRe matches <namedseason> elements in NFO text. Numbered
// seasons added later in the pipeline overwrite custom names, so these
// are collected separately and re-applied by the caller.
var namedSeasonRe = regexp.MustCompile(`(?i)<namedseason number="(.*)">(.*)</namedseason>`)

// Converter turns a secondary provider's external ID into a TMDB show ID.
// It returns an empty string when the ID maps to no known show.
type Converter interface {
	ConvertExternalID(ctx context.Context, externalSource string, externalID string) (string, error)
}

// Resolver extracts canonical show identifiers from NFO text and free-form
// ID tokens.
type Resolver struct {
	converter Converter
}

// NewResolver creates a Resolver. The converter is used to translate IMDb
// and TheTVDB identifiers into TMDB ones.
func NewResolver(converter Converter) *Resolver {
	return &Resolver{converter: converter}
}

// ResolveFromText scans NFO contents for a recognized show URL and for
// named-season overrides. The identifier result is nil when no pattern
// matches or every matched ID fails to convert; named seasons are returned
// regardless of whether an identifier was found.
func (r *Resolver) ResolveFromText(ctx context.Context, text string) (*models.ParsedIdentifier, []models.NamedSeasonOverride) {
	logger := config.GetLogger()

	namedSeasons := parseNamedSeasons(text)

	for _, pattern := range showIDPatterns {
		match := pattern.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		logger.Debug().Str("pattern", pattern.re.String()).Str("id", match[1]).Msg("Matched show identifier")

		if pattern.kind == models.KindTMDB {
			result := &models.ParsedIdentifier{Provider: "tmdb", ID: match[1]}
			if len(match) > 2 {
				result.EpisodeGrouping = match[2]
			}
			return result, namedSeasons
		}

		tmdbID, err := r.converter.ConvertExternalID(ctx, pattern.kind, match[1])
		if err != nil {
			logger.Debug().Err(err).Str("kind", pattern.kind).Str("id", match[1]).Msg("External ID conversion failed")
			continue
		}
		if tmdbID == "" {
			continue
		}
		return &models.ParsedIdentifier{Provider: "tmdb", ID: tmdbID}, namedSeasons
	}

	return nil, namedSeasons
}

func parseNamedSeasons(text string) []models.NamedSeasonOverride {
	matches := namedSeasonRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seasons := make([]models.NamedSeasonOverride, 0, len(matches))
	for _, m := range matches {
		seasons = append(seasons, models.NamedSeasonOverride{Number: m[1], Name: m[2]})
	}
	return seasons
}

// ParseMediaID interprets a free-form token as a provider-prefixed media
// ID. A bare tt-number is accepted as an IMDb ID since the form is
// unambiguous. Returns nil when the token matches no known form.
func ParseMediaID(token string) *models.MediaID {
	token = strings.ToLower(token)

	switch {
	case strings.HasPrefix(token, "tt") && isDigits(token[2:]):
		return &models.MediaID{Kind: models.KindIMDB, Value: token}
	case strings.HasPrefix(token, "imdb/tt") && isDigits(token[7:]):
		return &models.MediaID{Kind: models.KindIMDB, Value: token[5:]}
	case strings.HasPrefix(token, "tmdb/") && isDigits(token[5:]):
		return &models.MediaID{Kind: models.KindTMDB, Value: token[5:]}
	case strings.HasPrefix(token, "tvdb/") && isDigits(token[5:]):
		return &models.MediaID{Kind: models.KindTVDB, Value: token[5:]}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// NormalizeText decodes NFO bytes into UTF-8, sniffing the character set
// from the content itself. NFO files in the wild are frequently written in
// legacy encodings.
func NormalizeText(r io.Reader) (string, error) {
	decoded, err := charset.NewReader(r, "")
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(decoded)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
