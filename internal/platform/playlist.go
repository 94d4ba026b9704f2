package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultPlaylistTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// PlaylistService lists YouTube playlists using the ytdlp library
type PlaylistService struct {
	timeout time.Duration
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService() *PlaylistService {
	return &PlaylistService{
		timeout: DefaultPlaylistTimeout,
	}
}

// SetTimeout sets the timeout for listing operations
func (p *PlaylistService) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// PlaylistTitles returns the titles of all videos in the playlist, in order
func (p *PlaylistService) PlaylistTitles(ctx context.Context, url string) ([]string, error) {
	playlistID, err := ExtractPlaylistID(url)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	titles := make([]string, 0, len(items))
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	return titles, nil
}

// ExtractPlaylistID extracts the playlist ID from a YouTube URL. Supported forms:
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
func ExtractPlaylistID(url string) (string, error) {
	_, after, found := strings.Cut(url, PlaylistParam)
	if !found {
		return "", fmt.Errorf("invalid playlist URL: %s", url)
	}

	playlistID, _, _ := strings.Cut(after, ParamSeparator)
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return "", fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}
	return playlistID, nil
}
