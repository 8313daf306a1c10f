package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/celebrityscoop868/sunpowerabc/internal/platform/config"
)

func TestNew_Level(t *testing.T) {
	t.Parallel()

	logger, err := New(config.LogConfig{Level: "warn"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("error should be enabled at warn level")
	}
}

func TestNew_Development(t *testing.T) {
	t.Parallel()

	logger, err := New(config.LogConfig{Level: "debug", Development: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug should be enabled")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
