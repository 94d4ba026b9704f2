package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ytget/songbatch/internal/config"
	"github.com/ytget/songbatch/internal/logging"
	"github.com/ytget/songbatch/internal/model"
)

// Output and format selection for yt-dlp
const (
	OutputTemplate    = "%(title)s.%(ext)s"
	AudioFormatSpec   = "bestaudio/best"
	VideoFormatSpec   = "bestvideo+bestaudio/best"
	DefaultSearch     = "ytsearch1:"
	DefaultProgressHz = 500 * time.Millisecond
)

// ErrEmptyQuery is returned when a blank track name reaches the fetcher
var ErrEmptyQuery = errors.New("empty search query")

// YTDLPFetcher downloads the best search match for a track with yt-dlp
type YTDLPFetcher struct {
	searchPrefix string
	frequency    time.Duration
	log          zerolog.Logger
	logSometimes rate.Sometimes
}

// NewYTDLPFetcher creates a fetcher from the job configuration
func NewYTDLPFetcher(cfg config.Job) *YTDLPFetcher {
	prefix := cfg.SearchPrefix
	if prefix == "" {
		prefix = DefaultSearch
	}
	frequency := cfg.ProgressFrequency
	if frequency <= 0 {
		frequency = DefaultProgressHz
	}

	return &YTDLPFetcher{
		searchPrefix: prefix,
		frequency:    frequency,
		log:          logging.GetLogger("fetcher"),
		logSometimes: rate.Sometimes{Interval: time.Second},
	}
}

// Fetch searches for query and downloads the best match into destDir
func (f *YTDLPFetcher) Fetch(ctx context.Context, query string, format model.Format, destDir string, onEvent func(model.FetchEvent)) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return &model.FetchError{Track: query, Err: ErrEmptyQuery}
	}

	dl := f.command(format, destDir).
		ProgressFunc(f.frequency, func(update ytdlp.ProgressUpdate) {
			event, ok := eventFromUpdate(update, time.Now())
			if !ok {
				return
			}
			f.logSometimes.Do(func() {
				f.log.Debug().
					Str("query", query).
					Int("downloaded_bytes", event.DownloadedBytes).
					Int("total_bytes", event.TotalBytes).
					Float64("speed_kbps", model.KBPerSecond(event.SpeedBytesPerSecond)).
					Msg("ytdlp progress")
			})
			if onEvent != nil {
				onEvent(event)
			}
		})

	res, err := dl.Run(ctx, f.searchPrefix+query)
	if err != nil {
		if res != nil && res.Stderr != "" {
			f.log.Debug().Str("query", query).Str("stderr", res.Stderr).Msg("ytdlp stderr")
		}
		return &model.FetchError{Track: query, Err: fmt.Errorf("ytdlp run: %w", err)}
	}
	return nil
}

// command builds the yt-dlp invocation for a format
func (f *YTDLPFetcher) command(format model.Format, destDir string) *ytdlp.Command {
	dl := ytdlp.New().
		NoPlaylist().
		Output(filepath.Join(destDir, OutputTemplate))

	if format == model.FormatVideoAudio {
		return dl.Format(VideoFormatSpec).MergeOutputFormat(model.FormatVideoAudio.Extension())
	}
	return dl.Format(AudioFormatSpec).ExtractAudio().AudioFormat(model.FormatAudio.Extension())
}

// eventFromUpdate maps a yt-dlp progress update to a fetch event.
// Updates other than downloading and finished are dropped.
func eventFromUpdate(update ytdlp.ProgressUpdate, now time.Time) (model.FetchEvent, bool) {
	switch update.Status {
	case ytdlp.ProgressStatusDownloading:
		event := model.FetchEvent{
			Status:          model.FetchStatusDownloading,
			DownloadedBytes: update.DownloadedBytes,
			TotalBytes:      update.TotalBytes,
		}
		if !update.Started.IsZero() {
			elapsed := now.Sub(update.Started)
			if elapsed.Seconds() > 0 {
				event.SpeedBytesPerSecond = float64(update.DownloadedBytes) / elapsed.Seconds()
			}
		}
		return event, true
	case ytdlp.ProgressStatusFinished:
		return model.FetchEvent{
			Status:          model.FetchStatusFinished,
			DownloadedBytes: update.DownloadedBytes,
			TotalBytes:      update.TotalBytes,
			Filename:        update.Filename,
		}, true
	default:
		return model.FetchEvent{}, false
	}
}
