package download

import (
	"context"

	"github.com/ytget/songbatch/internal/model"
)

// Fetcher resolves one track name to media and saves it in destDir.
// onEvent may be called from any goroutine while Fetch runs.
type Fetcher interface {
	Fetch(ctx context.Context, query string, format model.Format, destDir string, onEvent func(model.FetchEvent)) error
}

// TrackSource loads the track list for a job
type TrackSource interface {
	Load(path string) ([]string, error)
}

// StatusSink receives status updates for presentation. Calls come from the
// job and poller goroutines; UI implementations must marshal to their thread.
type StatusSink interface {
	OnTracks(current, next string, index, total int)
	OnProgress(progress model.Progress)
	OnSpeed(kbPerSecond float64)
	OnFinished(result model.JobResult)
}

// Downloader defines the interface for the download service.
type Downloader interface {
	SetStatusSink(sink StatusSink)
	Start(ctx context.Context, req Request) (*model.Job, error)
	TogglePause() (bool, error)
	Cancel() error
	Wait()
	State() model.JobState
	Job() (*model.Job, bool)
}
