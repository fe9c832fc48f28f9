package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

// DefaultTMDBBaseURL is the TMDB API root used when none is configured.
const DefaultTMDBBaseURL = "https://api.themoviedb.org/3"

// Config holds the full runtime configuration of the scraper.
type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	UserAgent             string `mapstructure:"user_agent"`
	LogLevel              string `mapstructure:"log_level"`
	SentryDSN             string `mapstructure:"sentry_dsn"`

	TMDB struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"tmdb"`

	Trakt struct {
		ClientID string `mapstructure:"client_id"`
	} `mapstructure:"trakt"`

	Image struct {
		BaseURL    string `mapstructure:"base_url"`
		PreviewURL string `mapstructure:"preview_url"`
	} `mapstructure:"image"`

	// Language is the detail language requested from TMDB, e.g. "zh-CN".
	Language string `mapstructure:"language"`

	// Scraper behavior toggles. These correspond one to one with the
	// options exposed to the media center user.
	KeepOriginalTitle          bool     `mapstructure:"keep_original_title"`
	WriteInitials              bool     `mapstructure:"write_initials"`
	WriteInitialsOriginalTitle bool     `mapstructure:"write_initials_original_title"`
	SaveTags                   bool     `mapstructure:"save_tags"`
	PreferLandscape            bool     `mapstructure:"prefer_landscape"`
	StudioCountry              bool     `mapstructure:"studio_country"`
	CertCountry                string   `mapstructure:"cert_country"`
	CertPrefix                 string   `mapstructure:"cert_prefix"`
	RatingSources              []string `mapstructure:"rating_sources"`

	Trailer struct {
		Enabled bool   `mapstructure:"enabled"`
		Player  string `mapstructure:"player"` // "youtube" or "tubed"
	} `mapstructure:"trailer"`

	// Initials configures the optional transliteration side service used
	// to build sort titles. An empty address disables the lookup.
	Initials struct {
		Address string `mapstructure:"address"`
		Timeout string `mapstructure:"timeout"` // Go duration string
	} `mapstructure:"initials"`

	Server struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`

	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`

	Cache struct {
		Provider string `mapstructure:"provider"` // "memory" or "redis"
		Size     int    `mapstructure:"size"`     // Maximum number of entries in the LRU cache
		TTL      string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// Parse and set log level from config
	level := zerolog.InfoLevel // default
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	// Set the global log level
	zerolog.SetGlobalLevel(level)

	// Update logger with the configured level
	logger = logger.Level(level)

	globalConfig = config
}

// LoadConfig reads the yaml config file and environment overrides into a
// Config, applying defaults for everything the user left unset.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Add specific environment variable for log level
	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	_ = viper.BindEnv("tmdb.api_key", "TMDB_API_KEY")

	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.TMDB.BaseURL == "" {
		config.TMDB.BaseURL = DefaultTMDBBaseURL
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.address", "localhost")
	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.port", 9090)
	viper.SetDefault("language", "en-US")
	viper.SetDefault("cert_country", "us")
	viper.SetDefault("rating_sources", []string{"themoviedb"})
	viper.SetDefault("trailer.enabled", true)
	viper.SetDefault("trailer.player", "youtube")
	viper.SetDefault("image.base_url", "https://image.tmdb.org/t/p/original")
	viper.SetDefault("image.preview_url", "https://image.tmdb.org/t/p/w780")
	viper.SetDefault("initials.timeout", "5s")
	viper.SetDefault("cache.provider", "memory")
	viper.SetDefault("cache.size", 512)
	viper.SetDefault("cache.ttl", "1h")
}

// GetConfig returns the process-wide configuration loaded at startup.
func GetConfig() *Config {
	return globalConfig
}

// GetUserAgent returns the configured User-Agent, falling back to the default.
func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

// GetLogger returns the process-wide logger.
func GetLogger() zerolog.Logger {
	return logger
}
