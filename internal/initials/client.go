// Package initials talks to the transliteration side service that turns a
// CJK title into its pinyin initials for sort keys. The service speaks a
// one-shot TCP protocol: a JSON request, a half-close, a JSON response.
package initials

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/fallback"
	"github.com/failsafe-go/failsafe-go/timeout"

	"github.com/forbxy/tvmeta/internal/config"
)

const defaultTimeout = 5 * time.Second

// Client queries the initials service. A missing or unresponsive service
// yields empty initials so library updates never stall on it.
type Client struct {
	address  string
	timeout  time.Duration
	executor failsafe.Executor[string]
}

// NewClient creates a Client from the configured service address. An empty
// address disables lookups entirely.
func NewClient(cfg *config.Config) *Client {
	t := defaultTimeout
	if cfg.Initials.Timeout != "" {
		if parsed, err := time.ParseDuration(cfg.Initials.Timeout); err == nil {
			t = parsed
		}
	}
	return &Client{
		address: cfg.Initials.Address,
		timeout: t,
		executor: failsafe.NewExecutor[string](
			fallback.WithResult(""),
			timeout.With[string](t),
		),
	}
}

// Initials returns the pinyin initials for text, or "" when the service is
// disabled, times out, or fails.
func (c *Client) Initials(ctx context.Context, text string) string {
	if c.address == "" || text == "" {
		return ""
	}

	result, err := c.executor.WithContext(ctx).Get(func() (string, error) {
		return c.query(text)
	})
	if err != nil {
		logger := config.GetLogger()
		logger.Debug().Err(err).Msg("Initials lookup failed")
		return ""
	}
	return result
}

func (c *Client) query(text string) (string, error) {
	conn, err := net.DialTimeout("tcp", c.address, c.timeout)
	if err != nil {
		return "", err
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	if err := json.NewEncoder(conn).Encode(map[string]string{"pinyin": text}); err != nil {
		return "", err
	}
	// Half-close signals end of request; the service replies then closes.
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.CloseWrite()
	}

	data, err := io.ReadAll(conn)
	if err != nil {
		return "", err
	}

	var response struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(data, &response); err != nil {
		return "", err
	}
	return response.Result, nil
}
