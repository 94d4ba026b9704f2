package platform

import (
	"context"
	"testing"
	"time"
)

func TestNewPlaylistService(t *testing.T) {
	service := NewPlaylistService()

	if service == nil {
		t.Fatal("service should not be nil")
	}
	if service.timeout != DefaultPlaylistTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultPlaylistTimeout, service.timeout)
	}

	service.SetTimeout(5 * time.Second)
	if service.timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", service.timeout)
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{
			name:     "playlist page",
			url:      "https://www.youtube.com/playlist?list=PLrAXtmRdnEQy6nuLMt9xUCc",
			expected: "PLrAXtmRdnEQy6nuLMt9xUCc",
		},
		{
			name:     "watch page with extra parameters",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123&start_radio=1",
			expected: "PL123",
		},
		{
			name:    "video without playlist",
			url:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantErr: true,
		},
		{
			name:    "empty list parameter",
			url:     "https://www.youtube.com/playlist?list=&v=1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPlaylistID(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractPlaylistID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ExtractPlaylistID() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestPlaylistTitlesRejectsInvalidURL(t *testing.T) {
	service := NewPlaylistService()

	if _, err := service.PlaylistTitles(context.Background(), "https://example.com/song"); err == nil {
		t.Error("expected error for URL without playlist")
	}
}
