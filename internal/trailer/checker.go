// Package trailer verifies that YouTube trailer keys still resolve to a
// playable video.
package trailer

import (
	"context"
	"strings"

	"github.com/forbxy/tvmeta/internal/cache"
	"github.com/forbxy/tvmeta/internal/config"
	"github.com/forbxy/tvmeta/internal/fetch"
)

const watchURL = "https://www.youtube.com/watch?v="

// unavailableMarker appears in the watch page body of removed and
// region-blocked videos.
const unavailableMarker = "Video unavailable"

// YouTubeChecker probes YouTube watch pages. Results are cached because a
// show scrape can probe the same key several times across language passes.
type YouTubeChecker struct {
	loader   *fetch.Loader
	cache    cache.Cache
	watchURL string
}

// NewYouTubeChecker creates a checker. The cache is optional.
func NewYouTubeChecker(loader *fetch.Loader, c cache.Cache) *YouTubeChecker {
	return &YouTubeChecker{loader: loader, cache: c, watchURL: watchURL}
}

// Check reports whether the video behind key is still available. A fetch
// failure counts as unavailable.
func (y *YouTubeChecker) Check(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}

	if y.cache != nil {
		if cached, ok := y.cache.Get(key); ok {
			return string(cached) == "1"
		}
	}

	live := y.probe(ctx, key)

	if y.cache != nil {
		value := "0"
		if live {
			value = "1"
		}
		y.cache.Set(key, []byte(value))
	}
	return live
}

func (y *YouTubeChecker) probe(ctx context.Context, key string) bool {
	body, err := y.loader.Text(ctx, y.watchURL+key)
	if err != nil {
		logger := config.GetLogger()
		logger.Debug().Err(err).Str("key", key).Msg("Trailer liveness probe failed")
		return false
	}
	return !strings.Contains(body, unavailableMarker)
}
