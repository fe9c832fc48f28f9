package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/forbxy/tvmeta/internal/cache"
	"github.com/forbxy/tvmeta/internal/config"
	"github.com/forbxy/tvmeta/internal/fetch"
	"github.com/forbxy/tvmeta/internal/ids"
	"github.com/forbxy/tvmeta/internal/initials"
	"github.com/forbxy/tvmeta/internal/mapper"
	"github.com/forbxy/tvmeta/internal/metrics"
	"github.com/forbxy/tvmeta/internal/ratings"
	"github.com/forbxy/tvmeta/internal/scraper"
	"github.com/forbxy/tvmeta/internal/server"
	"github.com/forbxy/tvmeta/internal/tmdb"
	"github.com/forbxy/tvmeta/internal/trailer"
)

// cacheErrorLogger adapts the zerolog logger to the cache error facade.
type cacheErrorLogger struct{}

func (cacheErrorLogger) Error(msg string, err error) {
	logger := config.GetLogger()
	logger.Error().Err(err).Msg(msg)
}

func newCache(cfg *config.Config, group string) cache.Cache {
	logger := config.GetLogger()

	ttl := time.Hour
	if cfg.Cache.TTL != "" {
		if parsed, err := time.ParseDuration(cfg.Cache.TTL); err == nil {
			ttl = parsed
		} else {
			logger.Warn().Err(err).Str("ttl", cfg.Cache.TTL).Msg("Invalid cache TTL, using default 1h")
		}
	}

	c, err := cache.New(cfg.Cache.Provider, cache.ProviderConfig{
		Size:          cfg.Cache.Size,
		TTL:           ttl,
		Logger:        cacheErrorLogger{},
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		Group:         group,
	})
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.Cache.Provider).Str("group", group).Msg("Failed to create cache")
	}
	return c
}

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("language", cfg.Language).
		Str("cache_provider", cfg.Cache.Provider).
		Str("server_address", cfg.Server.Address).
		Int("server_port", cfg.Server.Port).
		Msg("Application started with configuration")

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Sentry")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	httpClient := fetch.NewHTTPClient(cfg)
	userAgent := config.GetUserAgent()

	tmdbCache := newCache(cfg, "tmdb")
	defer tmdbCache.Close()
	trailerCache := newCache(cfg, "trailer")
	defer trailerCache.Close()

	tmdbLoader := fetch.NewLoader(httpClient, userAgent, tmdbCache, "tmdb")
	youtubeLoader := fetch.NewLoader(httpClient, userAgent, nil, "youtube")
	imdbLoader := fetch.NewLoader(httpClient, userAgent, nil, "imdb")
	traktLoader := fetch.NewLoader(httpClient, userAgent, nil, "trakt")

	tmdbClient := tmdb.NewClient(cfg, tmdbLoader)
	checker := trailer.NewYouTubeChecker(youtubeLoader, trailerCache)
	initialsClient := initials.NewClient(cfg)
	enricher := ratings.NewEnricher(cfg, imdbLoader, traktLoader)

	s := scraper.New(
		tmdbClient,
		ids.NewResolver(tmdbClient),
		enricher,
		mapper.New(cfg, initialsClient, checker),
	)

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && err.Error() != "http: Server closed" {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, s).ListenAndServe(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to serve API")
	}

	logger.Info().Msg("Server stopped gracefully")
}
