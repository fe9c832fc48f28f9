package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/forbxy/tvmeta/internal/apperrors"
	"github.com/forbxy/tvmeta/internal/cache"
	"github.com/forbxy/tvmeta/internal/config"
	"github.com/forbxy/tvmeta/internal/metrics"
	"github.com/forbxy/tvmeta/internal/models"
)

// Loader performs HTTP GET requests and decodes the results. Any transport,
// status, or parse failure is reported as apperrors.ErrUnavailable; callers
// collapse that to not-found and omit the metadata piece they were after.
type Loader struct {
	httpClient *http.Client
	userAgent  string
	cache      cache.Cache
	target     string
}

// NewHTTPClient builds the shared HTTP client with optional proxy support
// and transparent response decompression.
func NewHTTPClient(cfg *config.Config) *http.Client {
	logger := config.GetLogger()

	timeout := 30 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to preserve its settings (timeouts, connection
	// pooling, HTTP/2) and only override the proxy.
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: newCompressionTransport(baseTransport),
	}
}

// NewLoader creates a Loader. The cache is optional; pass nil to disable
// response caching. The target label (tmdb, youtube, imdb, trakt) is used
// for the remote request metrics.
func NewLoader(httpClient *http.Client, userAgent string, c cache.Cache, target string) *Loader {
	return &Loader{
		httpClient: httpClient,
		userAgent:  userAgent,
		cache:      c,
		target:     target,
	}
}

// JSON fetches rawURL with the given query parameters and decodes the
// response body as a JSON object. Extra headers override the defaults.
func (l *Loader) JSON(ctx context.Context, rawURL string, params url.Values, headers map[string]string) (models.Record, error) {
	body, err := l.get(ctx, rawURL, params, headers)
	if err != nil {
		return nil, err
	}

	var rec models.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, apperrors.NewUnavailableError(rawURL, err)
	}
	return rec, nil
}

// Text fetches rawURL and returns the response body as a string.
func (l *Loader) Text(ctx context.Context, rawURL string) (string, error) {
	body, err := l.get(ctx, rawURL, nil, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (l *Loader) get(ctx context.Context, rawURL string, params url.Values, headers map[string]string) ([]byte, error) {
	logger := config.GetLogger()

	fullURL := rawURL
	if len(params) > 0 {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return nil, apperrors.NewUnavailableError(rawURL, err)
		}
		query := parsed.Query()
		for key, values := range params {
			for _, v := range values {
				query.Add(key, v)
			}
		}
		parsed.RawQuery = query.Encode()
		fullURL = parsed.String()
	}

	if l.cache != nil {
		if cached, ok := l.cache.Get(fullURL); ok {
			logger.Debug().Str("url", rawURL).Msg("Serving response from cache")
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, apperrors.NewUnavailableError(rawURL, err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Str("url", rawURL).Msg("Request failed")
		l.count("error")
		return nil, apperrors.NewUnavailableError(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug().Int("status", resp.StatusCode).Str("url", rawURL).Msg("Request returned non-OK status")
		if resp.StatusCode == http.StatusNotFound {
			l.count("not_found")
		} else {
			l.count("error")
		}
		return nil, apperrors.NewUnavailableError(rawURL, fmt.Errorf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		l.count("error")
		return nil, apperrors.NewUnavailableError(rawURL, err)
	}
	l.count("ok")

	if l.cache != nil {
		l.cache.Set(fullURL, body)
	}

	return body, nil
}

func (l *Loader) count(status string) {
	if l.target != "" {
		metrics.RemoteRequestsTotal.WithLabelValues(l.target, status).Inc()
	}
}
