package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"ERROR", LevelError},
		{"unknown", LevelInfo}, // Default to Info
		{"", LevelInfo},        // Default to Info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	logger.Info("test message", "key", "value")
	logger.Debug("hidden")

	output := buf.String()
	for _, want := range []string{"INFO", "test message", "key=value"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got %q", want, output)
		}
	}
	if strings.Contains(output, "hidden") {
		t.Errorf("debug message should be filtered at info level, got %q", output)
	}
}

func TestSetupSetsDefault(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger := Setup(LevelWarn, &buf)

	if slog.Default() != logger {
		t.Error("Setup should install the logger as default")
	}
	slog.Info("filtered")
	slog.Warn("kept")
	if strings.Contains(buf.String(), "filtered") || !strings.Contains(buf.String(), "kept") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestSetupTee(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	fs := afero.NewMemMapFs()
	var console bytes.Buffer

	logger, closer, err := SetupTee(fs, LevelInfo, &console, "/svc/installer.log")
	if err != nil {
		t.Fatalf("SetupTee() error = %v", err)
	}
	logger.Info("tee message")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	content, err := afero.ReadFile(fs, "/svc/installer.log")
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "tee message") {
		t.Errorf("log file should contain message, got %q", content)
	}
	if !strings.Contains(console.String(), "tee message") {
		t.Errorf("console should contain message, got %q", console.String())
	}
}

func TestSetupTee_ReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	if _, _, err := SetupTee(fs, LevelInfo, nil, "/svc/installer.log"); err == nil {
		t.Error("SetupTee should fail on a read-only filesystem")
	}
}

func TestDiscard(t *testing.T) {
	// Should not panic.
	Discard().Error("dropped")
}
