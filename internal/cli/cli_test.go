package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ytget/songbatch/internal/config"
	"github.com/ytget/songbatch/internal/model"
)

type fakeFetcher struct {
	calls  []string
	failOn string
}

func (f *fakeFetcher) Fetch(ctx context.Context, query string, format model.Format, destDir string, onEvent func(model.FetchEvent)) error {
	f.calls = append(f.calls, query)
	if query == f.failOn {
		return &model.FetchError{Track: query, Err: errors.New("no results")}
	}
	onEvent(model.FetchEvent{Status: model.FetchStatusFinished, Filename: filepath.Join(destDir, query+".mp3")})
	return nil
}

func testEnv(t *testing.T) *config.Env {
	t.Helper()
	dir := t.TempDir()
	return &config.Env{
		Log: config.Log{File: filepath.Join(dir, "download_log.log"), Level: "info"},
		Job: config.Job{
			SpeedPollInterval: 5 * time.Millisecond,
			SearchPrefix:      "ytsearch1:",
			ProgressFrequency: 500 * time.Millisecond,
		},
		Source: config.Source{
			SheetName:      "Worksheet",
			ColumnName:     "Track Name",
			TrackNamesFile: filepath.Join(dir, "track_names.txt"),
		},
	}
}

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "songs.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, env *config.Env, fetcher *fakeFetcher, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(env, fetcher)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunCommand_DownloadsList(t *testing.T) {
	env := testEnv(t)
	fetcher := &fakeFetcher{}
	input := writeList(t, "Song A\n\nSong B\n")
	dest := filepath.Join(t.TempDir(), "music")

	out, err := execute(t, env, fetcher, "run", "--input", input, "--dest", dest)
	if err != nil {
		t.Fatalf("run error = %v\n%s", err, out)
	}

	if len(fetcher.calls) != 2 || fetcher.calls[0] != "Song A" || fetcher.calls[1] != "Song B" {
		t.Errorf("Unexpected fetches %v", fetcher.calls)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("Expected destination created: %v", err)
	}
	for _, want := range []string{"Downloading 2 songs", "[1/2] Song A", "next: Song B", "100%", "Download complete: 2/2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	logData, err := os.ReadFile(env.Log.File)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(logData), "Successfully downloaded: Song B") {
		t.Errorf("Expected per-song success in log, got:\n%s", logData)
	}
}

func TestRunCommand_FetchFailureIsReported(t *testing.T) {
	env := testEnv(t)
	fetcher := &fakeFetcher{failOn: "Song B"}
	input := writeList(t, "Song A\nSong B\nSong C\n")

	out, err := execute(t, env, fetcher, "run", "-i", input, "-d", t.TempDir(), "--keys=false")
	if err != nil {
		t.Fatalf("Expected fetch failures not to fail the run, got %v", err)
	}
	if len(fetcher.calls) != 3 {
		t.Errorf("Expected all songs attempted, got %v", fetcher.calls)
	}
	if !strings.Contains(out, "Download complete: 2/3") || !strings.Contains(out, "Failed: Song B") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestRunCommand_BlockingErrors(t *testing.T) {
	input := writeList(t, "Song A\n")
	csv := filepath.Join(t.TempDir(), "songs.csv")
	if err := os.WriteFile(csv, []byte("Song A\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		args   []string
		target any
	}{
		{"missing destination", []string{"run", "--input", input}, new(*model.ConfigError)},
		{"missing input", []string{"run", "--dest", t.TempDir()}, new(*model.ConfigError)},
		{"unsupported format", []string{"run", "--input", input, "--dest", t.TempDir(), "--format", "flac"}, new(*model.ConfigError)},
		{"unsupported extension", []string{"run", "--input", csv, "--dest", t.TempDir()}, new(*model.FormatError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			_, err := execute(t, testEnv(t), fetcher, tt.args...)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.As(err, tt.target) {
				t.Errorf("Unexpected error type %T: %v", err, err)
			}
			if !model.IsBlocking(err) {
				t.Errorf("Expected blocking error, got %v", err)
			}
			if len(fetcher.calls) != 0 {
				t.Errorf("Expected no fetches, got %v", fetcher.calls)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, testEnv(t), &fakeFetcher{}, "version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "songbatch "+Version {
		t.Errorf("Unexpected version output %q", out)
	}
}
