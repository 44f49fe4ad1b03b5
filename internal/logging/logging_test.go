package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestSetupWritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "courier.log")
	closer, err := Setup(path, "debug")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	New("engine").Debug("delivery applied", slog.String("parcel", "tea"))
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"component=engine", "parcel=tea", "delivery applied"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Expected %q in log output %q", want, data)
		}
	}
}

func TestSetupDiscard(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	closer, err := Setup("", "info")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer closer.Close()
	if slog.Default().Enabled(t.Context(), slog.LevelError) {
		t.Error("Expected discard logger to be disabled")
	}
}
