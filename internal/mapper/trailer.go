package mapper

import (
	"context"

	"golang.org/x/text/language"

	"github.com/forbxy/tvmeta/internal/models"
)

// TrailerChecker verifies that a YouTube video key still plays. Keys on
// TMDB routinely point at removed or region-blocked uploads.
type TrailerChecker interface {
	Check(ctx context.Context, key string) bool
}

// Player URL templates the library can launch.
const (
	tubedPlayerPrefix   = "plugin://plugin.video.tubed/?mode=play&video_id="
	youtubePlayerPrefix = "plugin://plugin.video.youtube/play/?video_id="
)

func (m *Mapper) playerPrefix() string {
	if m.cfg.Trailer.Player == "tubed" {
		return tubedPlayerPrefix
	}
	return youtubePlayerPrefix
}

// pickTrailer selects a playable trailer URL from the show's video list.
// Videos in the configured language are preferred over English ones, and
// within a language pass, videos TMDB types as "Trailer" are validated
// first while the rest are kept as ordered backups.
func (m *Mapper) pickTrailer(ctx context.Context, results []models.Record) string {
	if len(results) == 0 || m.checker == nil {
		return ""
	}

	prefix := m.playerPrefix()
	languages := []string{baseLanguage(m.cfg.Language), "en"}
	if languages[0] == "en" {
		languages = languages[:1]
	}

	var backups []string
	for _, lang := range languages {
		for _, result := range results {
			if result.Str("site") != "YouTube" || result.Str("iso_639_1") != lang {
				continue
			}
			key := result.Str("key")
			if result.Str("type") == "Trailer" {
				if m.checker.Check(ctx, key) {
					return prefix + key
				}
			} else {
				backups = append(backups, key)
			}
		}
		for _, key := range backups {
			if m.checker.Check(ctx, key) {
				return prefix + key
			}
		}
	}
	return ""
}

// baseLanguage reduces a locale like "zh-CN" to its base language code,
// which is what TMDB tags videos and images with.
func baseLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "en"
	}
	base, _ := tag.Base()
	return base.String()
}
