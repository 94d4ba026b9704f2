package download

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/songbatch/internal/config"
	"github.com/ytget/songbatch/internal/model"
)

func TestEventFromUpdate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 10, 0, time.UTC)

	tests := []struct {
		name      string
		update    ytdlp.ProgressUpdate
		wantOK    bool
		wantEvent model.FetchEvent
	}{
		{
			name: "downloading computes speed",
			update: ytdlp.ProgressUpdate{
				Status:          ytdlp.ProgressStatusDownloading,
				DownloadedBytes: 20480,
				TotalBytes:      40960,
				Started:         now.Add(-10 * time.Second),
			},
			wantOK: true,
			wantEvent: model.FetchEvent{
				Status:              model.FetchStatusDownloading,
				SpeedBytesPerSecond: 2048,
				DownloadedBytes:     20480,
				TotalBytes:          40960,
			},
		},
		{
			name: "downloading without start time",
			update: ytdlp.ProgressUpdate{
				Status:          ytdlp.ProgressStatusDownloading,
				DownloadedBytes: 100,
			},
			wantOK: true,
			wantEvent: model.FetchEvent{
				Status:          model.FetchStatusDownloading,
				DownloadedBytes: 100,
			},
		},
		{
			name: "finished carries filename",
			update: ytdlp.ProgressUpdate{
				Status:          ytdlp.ProgressStatusFinished,
				DownloadedBytes: 40960,
				TotalBytes:      40960,
				Filename:        "/music/Song.mp3",
			},
			wantOK: true,
			wantEvent: model.FetchEvent{
				Status:          model.FetchStatusFinished,
				DownloadedBytes: 40960,
				TotalBytes:      40960,
				Filename:        "/music/Song.mp3",
			},
		},
		{
			name:   "post processing is dropped",
			update: ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusPostProcessing},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, ok := eventFromUpdate(tt.update, now)
			if ok != tt.wantOK {
				t.Fatalf("eventFromUpdate() ok = %v, expected %v", ok, tt.wantOK)
			}
			if event != tt.wantEvent {
				t.Errorf("eventFromUpdate() = %+v, expected %+v", event, tt.wantEvent)
			}
		})
	}
}

func TestNewYTDLPFetcherDefaults(t *testing.T) {
	f := NewYTDLPFetcher(config.Job{})
	if f.searchPrefix != DefaultSearch {
		t.Errorf("Expected search prefix %q, got %q", DefaultSearch, f.searchPrefix)
	}
	if f.frequency != DefaultProgressHz {
		t.Errorf("Expected frequency %v, got %v", DefaultProgressHz, f.frequency)
	}

	f = NewYTDLPFetcher(config.Job{SearchPrefix: "ytsearch3:", ProgressFrequency: time.Second})
	if f.searchPrefix != "ytsearch3:" || f.frequency != time.Second {
		t.Errorf("Configured values not applied: %q %v", f.searchPrefix, f.frequency)
	}
}

func TestFetchRejectsBlankQuery(t *testing.T) {
	f := NewYTDLPFetcher(config.Job{})

	err := f.Fetch(context.Background(), "   ", model.FormatAudio, t.TempDir(), nil)

	var fetchErr *model.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected FetchError, got %v", err)
	}
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery, got %v", err)
	}
}
