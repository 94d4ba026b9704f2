package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		level   zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"", zerolog.InfoLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"loud", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		level, err := ParseLevel(tt.input)
		if level != tt.level {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, level, tt.level)
		}
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestInitAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "download_log.log")
	if err := os.WriteFile(path, []byte("previous line\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	closer, err := Init(Options{File: path, Level: "info"})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	logger := GetLogger("test")
	logger.Info().Msg("Selected file: songs.txt")
	logger.Debug().Msg("hidden at info level")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "previous line\n") {
		t.Error("log file should be appended to, not truncated")
	}
	if !strings.Contains(content, "INF") || !strings.Contains(content, "Selected file: songs.txt") {
		t.Errorf("expected level and message in log, got %q", content)
	}
	if strings.Contains(content, "hidden at info level") {
		t.Error("debug line should be filtered at info level")
	}
}

func TestSetOutput(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	var buf bytes.Buffer
	SetOutput(&buf)

	logger := GetLogger("orchestrator")
	logger.Warn().Str("track", "Song A").Msg("fetch failed")

	out := buf.String()
	if !strings.Contains(out, "WRN") || !strings.Contains(out, "component=orchestrator") || !strings.Contains(out, "track=") {
		t.Errorf("unexpected log line: %q", out)
	}
}
