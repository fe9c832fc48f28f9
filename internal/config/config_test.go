package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGetLoggerUsableFromLocal(t *testing.T) {
	var buf bytes.Buffer
	logger := GetLogger()
	scoped := logger.Output(&buf).Level(zerolog.DebugLevel)
	scoped.Debug().Str("kind", "show").Msg("lookup")

	out := buf.String()
	if !strings.Contains(out, `"message":"lookup"`) {
		t.Errorf("Expected log line with message, got %q", out)
	}
	if !strings.Contains(out, `"kind":"show"`) {
		t.Errorf("Expected log line with kind field, got %q", out)
	}
}

func TestGetUserAgentDefault(t *testing.T) {
	if got := GetUserAgent(); got == "" {
		t.Error("Expected a non-empty default user agent")
	}
}
