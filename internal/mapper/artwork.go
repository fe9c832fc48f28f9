package mapper

import (
	"sort"
	"strings"

	"github.com/forbxy/tvmeta/internal/models"
	"github.com/forbxy/tvmeta/internal/sink"
)

// imageURLs computes the full-size and preview URLs for an image record.
// SVGs are skipped because the library cannot render them. Images sourced
// from fanart.tv carry an absolute file path already, and its preview URL
// differs only in the path segment.
func (m *Mapper) imageURLs(image models.Record) (theURL, previewURL string) {
	path := image.Str("file_path")
	if strings.HasSuffix(path, ".svg") {
		return "", ""
	}
	if image.Str("type") == "fanarttv" {
		return path, strings.Replace(path, ".fanart.tv/fanart/", ".fanart.tv/preview/", 1)
	}
	return m.cfg.Image.BaseURL + path, m.cfg.Image.PreviewURL + path
}

// artworkType translates a TMDB image category into the library's artwork
// type name.
func artworkType(imageType string) string {
	switch imageType {
	case "posters":
		return "poster"
	case "logos":
		return "clearlogo"
	default:
		return imageType
	}
}

// setShowArtwork publishes all show-level images. Backdrops split two
// ways: language-tagged backdrops become landscape artwork when the
// prefer-landscape option is on, the rest are offered as fanart.
// imageTypeKeys returns the image categories in a stable order so artwork
// reaches the sink in the same sequence on every run.
func imageTypeKeys(images models.Record) []string {
	keys := make([]string, 0, len(images))
	for imageType := range images {
		keys = append(keys, imageType)
	}
	sort.Strings(keys)
	return keys
}

func (m *Mapper) setShowArtwork(info models.Record, s sink.VideoSink) {
	allImages := info.Map("images")
	for _, imageType := range imageTypeKeys(allImages) {
		images := allImages.Slice(imageType)

		if imageType == "backdrops" {
			var fanart []sink.Fanart
			for _, image := range images {
				theURL, previewURL := m.imageURLs(image)
				if theURL == "" {
					continue
				}
				lang, hasLang := image["iso_639_1"].(string)
				if hasLang && strings.ToLower(lang) != "xx" && m.cfg.PreferLandscape {
					s.AddAvailableArtwork(sink.Artwork{URL: theURL, Type: "landscape", Preview: previewURL})
				} else {
					fanart = append(fanart, sink.Fanart{Image: theURL})
				}
			}
			if len(fanart) > 0 {
				s.SetAvailableFanart(fanart)
			}
			continue
		}

		destination := artworkType(imageType)
		for _, image := range images {
			theURL, previewURL := m.imageURLs(image)
			if theURL == "" {
				continue
			}
			s.AddAvailableArtwork(sink.Artwork{URL: theURL, Type: destination, Preview: previewURL})
		}
	}
}

// addSeasonInfo registers every season with its display name and offers
// per-season artwork.
func (m *Mapper) addSeasonInfo(info models.Record, s sink.VideoSink) {
	for _, season := range info.Slice("seasons") {
		number := season.Int("season_number")
		s.AddSeason(number, season.Str("name"))

		seasonImages := season.Map("images")
		for _, imageType := range imageTypeKeys(seasonImages) {
			// Seasons only rename posters; other categories keep their name.
			destination := imageType
			if imageType == "posters" {
				destination = "poster"
			}
			for _, image := range seasonImages.Slice(imageType) {
				theURL, previewURL := m.imageURLs(image)
				if theURL == "" {
					continue
				}
				s.AddAvailableArtwork(sink.Artwork{
					URL:     theURL,
					Type:    destination,
					Preview: previewURL,
					Season:  number,
				})
			}
		}
	}
}
