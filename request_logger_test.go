package restclient

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNoopLogger(t *testing.T) {
	t.Parallel()

	var logger RequestLogger = &NoopLogger{}

	// Must be safe to call with any arguments.
	logger.Errorf("error %s", "x")
	logger.Warnf("warn %d", 1)
	logger.Debugf("debug")
}

func TestZerologLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	logger.Errorf("request to %s failed", "http://x.test")
	logger.Warnf("retrying %d", 2)
	logger.Debugf("done")

	out := buf.String()

	if !strings.Contains(out, `"level":"error"`) {
		t.Errorf("expected error level entry, got: %s", out)
	}

	if !strings.Contains(out, "request to http://x.test failed") {
		t.Errorf("expected formatted message, got: %s", out)
	}

	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("expected warn level entry, got: %s", out)
	}

	if !strings.Contains(out, `"level":"debug"`) {
		t.Errorf("expected debug level entry, got: %s", out)
	}
}

func TestZerologLogger_UsedForRetries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	client, err := New("http://example.com",
		WithRequestLogger(NewZerologLogger(zerolog.New(&buf))),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := client.options.requestLogger.(*ZerologLogger); !ok {
		t.Errorf("expected ZerologLogger, got %T", client.options.requestLogger)
	}
}
