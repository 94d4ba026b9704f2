package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/songbatch/internal/logging"
	"github.com/ytget/songbatch/internal/model"
	"github.com/ytget/songbatch/internal/observability"
)

// DefaultSpeedPollInterval is used when no interval is configured
const DefaultSpeedPollInterval = 250 * time.Millisecond

// Request describes a job to start
type Request struct {
	// InputPath is loaded through the TrackSource unless Tracks is set
	InputPath string
	// Tracks is a preloaded list, e.g. imported from a playlist
	Tracks      []string
	Destination string
	Format      model.Format
}

// Service runs one sequential download job at a time
type Service struct {
	fetcher      Fetcher
	source       TrackSource
	metrics      *observability.Metrics
	pollInterval time.Duration
	log          zerolog.Logger

	mu      sync.RWMutex
	sink    StatusSink
	job     *model.Job
	state   model.JobState
	control *jobControl
	speed   SpeedSample
	wg      sync.WaitGroup
}

// NewService creates a new download service
func NewService(fetcher Fetcher, source TrackSource, metrics *observability.Metrics, pollInterval time.Duration) *Service {
	if pollInterval <= 0 {
		pollInterval = DefaultSpeedPollInterval
	}
	if metrics == nil {
		metrics = observability.New()
	}
	return &Service{
		fetcher:      fetcher,
		source:       source,
		metrics:      metrics,
		pollInterval: pollInterval,
		log:          logging.GetLogger("orchestrator"),
		sink:         noopSink{},
		state:        model.JobStateIdle,
	}
}

// SetStatusSink sets the receiver of status updates for subsequent jobs
func (s *Service) SetStatusSink(sink StatusSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sink == nil {
		sink = noopSink{}
	}
	s.sink = sink
}

// Start validates the request, loads the track list and launches the job
// loop and the speed poller. Cancelling ctx aborts the in-flight fetch and
// ends the job as cancelled.
func (s *Service) Start(ctx context.Context, req Request) (*model.Job, error) {
	if s.State().IsActive() {
		return nil, model.ErrJobActive
	}

	tracks, err := s.prepare(req)
	if err != nil {
		s.log.Error().Err(err).Msg("Download not started")
		return nil, err
	}

	job := model.NewJob(uuid.NewString(), tracks, req.Format, req.Destination)
	control := newJobControl()

	s.mu.Lock()
	if s.state.IsActive() {
		s.mu.Unlock()
		return nil, model.ErrJobActive
	}
	job.StartedAt = time.Now()
	job.UpdateState(model.JobStateRunning)
	s.job = job
	s.control = control
	s.state = model.JobStateRunning
	sink := s.sink
	snapshot := job.Clone()
	s.wg.Add(2)
	s.mu.Unlock()

	s.speed.Reset()
	s.metrics.RecordJobStarted()
	s.log.Info().
		Str("job_id", job.ID).
		Int("tracks", job.Total()).
		Str("format", string(job.Format)).
		Str("destination", job.Destination).
		Msg("Download started")

	pollerDone := make(chan struct{})
	go func() {
		defer s.wg.Done()
		defer close(pollerDone)
		pollSpeed(&s.speed, s.pollInterval, control.done, func(kbps, bps float64) {
			s.metrics.SetSpeed(bps)
			sink.OnSpeed(kbps)
		})
	}()

	go func() {
		defer s.wg.Done()
		s.run(ctx, job, control, sink, pollerDone)
	}()

	return snapshot, nil
}

// prepare checks the request and resolves its track list
func (s *Service) prepare(req Request) ([]string, error) {
	if req.Destination == "" {
		return nil, &model.ConfigError{Field: "destination directory"}
	}
	if !req.Format.IsValid() {
		return nil, &model.ConfigError{Field: "format"}
	}

	tracks := req.Tracks
	if tracks == nil {
		if req.InputPath == "" {
			return nil, &model.ConfigError{Field: "input file"}
		}
		if s.source == nil {
			return nil, &model.ConfigError{Field: "track source"}
		}
		loaded, err := s.source.Load(req.InputPath)
		if err != nil {
			return nil, fmt.Errorf("load tracks: %w", err)
		}
		tracks = loaded
	}

	if len(tracks) == 0 {
		return nil, &model.ConfigError{Field: "track list"}
	}
	return tracks, nil
}

// run drives the loop and publishes the terminal result
func (s *Service) run(ctx context.Context, job *model.Job, control *jobControl, sink StatusSink, pollerDone <-chan struct{}) {
	stopWatch := context.AfterFunc(ctx, control.cancel)
	defer stopWatch()

	final, jobErr := s.loopRecovered(ctx, job, control, sink)

	control.stop()
	<-pollerDone
	s.speed.Reset()

	s.finish(job, final, jobErr, sink)
}

// loopRecovered turns a panic inside the loop into a JobError
func (s *Service) loopRecovered(ctx context.Context, job *model.Job, control *jobControl, sink StatusSink) (state model.JobState, jobErr error) {
	defer func() {
		if r := recover(); r != nil {
			state = model.JobStateFailed
			jobErr = &model.JobError{JobID: job.ID, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return s.loop(ctx, job, control, sink), nil
}

// loop fetches tracks in order. Pause and cancel are honoured only between tracks.
func (s *Service) loop(ctx context.Context, job *model.Job, control *jobControl, sink StatusSink) model.JobState {
	total := job.Total()

	for i, track := range job.Tracks {
		if control.awaitTurn() || ctx.Err() != nil {
			s.log.Info().Str("job_id", job.ID).Int("completed", i).Msg("Download cancelled.")
			return model.JobStateCancelled
		}

		s.mu.Lock()
		job.Advance(i)
		job.UpdateItemStatus(i, model.ItemStatusDownloading, "")
		s.mu.Unlock()

		sink.OnTracks(track, job.NextTrack(i), i, total)

		started := time.Now()
		err := s.fetcher.Fetch(ctx, track, job.Format, job.Destination, func(event model.FetchEvent) {
			s.onFetchEvent(job, i, event)
		})
		if err != nil && ctx.Err() != nil {
			s.mu.Lock()
			job.UpdateItemStatus(i, model.ItemStatusSkipped, "")
			s.mu.Unlock()
			s.log.Info().Str("job_id", job.ID).Str("track", track).Int("completed", i).Msg("Download cancelled.")
			return model.JobStateCancelled
		}
		s.metrics.RecordFetch(err, time.Since(started))

		s.mu.Lock()
		if err != nil {
			job.UpdateItemStatus(i, model.ItemStatusError, err.Error())
		} else {
			job.UpdateItemStatus(i, model.ItemStatusCompleted, "")
		}
		job.Completed++
		job.Advance(i + 1)
		progress := job.Progress(time.Now())
		s.mu.Unlock()

		if err != nil {
			s.log.Error().Err(err).Str("track", track).Msgf("Failed to download %s", track)
		} else {
			s.log.Info().Str("track", track).Msgf("Successfully downloaded: %s", track)
		}

		sink.OnProgress(progress)
	}

	return model.JobStateCompleted
}

// onFetchEvent records speed samples and finished filenames
func (s *Service) onFetchEvent(job *model.Job, index int, event model.FetchEvent) {
	switch event.Status {
	case model.FetchStatusDownloading:
		s.speed.Store(event.SpeedBytesPerSecond)
	case model.FetchStatusFinished:
		s.log.Info().Str("filename", event.Filename).Msgf("Finished downloading: %s", event.Filename)
		s.mu.Lock()
		job.UpdateItemOutputPath(index, event.Filename)
		s.mu.Unlock()
	}
}

// finish moves the job to its terminal state and notifies the sink
func (s *Service) finish(job *model.Job, final model.JobState, jobErr error, sink StatusSink) {
	s.mu.Lock()
	job.FinishedAt = time.Now()
	if jobErr != nil {
		job.Error = jobErr.Error()
	}
	if final != model.JobStateCompleted {
		job.SkipPending()
	}
	job.UpdateState(final)
	s.state = final
	result := job.Result()
	s.mu.Unlock()

	switch final {
	case model.JobStateFailed:
		s.log.Error().Err(jobErr).Str("job_id", job.ID).Msg("Download failed")
	case model.JobStateCancelled:
		s.log.Info().Str("job_id", job.ID).Int("attempted", result.Attempted).Msg("Download job cancelled")
	default:
		s.log.Info().
			Str("job_id", job.ID).
			Int("succeeded", result.Succeeded).
			Int("failed", len(result.Failed)).
			Dur("elapsed", result.Elapsed).
			Msg("Download complete")
	}

	s.metrics.RecordJobFinished(final, result.Elapsed)
	sink.OnSpeed(0)
	sink.OnFinished(result)
}

// TogglePause flips between running and paused and returns the new paused value
func (s *Service) TogglePause() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsActive() {
		return false, model.ErrNoJob
	}

	// the loop is already exiting
	if s.control.isCancelled() {
		return s.control.isPaused(), nil
	}

	paused := s.control.togglePause()
	if paused {
		s.state = model.JobStatePaused
		s.log.Info().Str("job_id", s.job.ID).Msg("Download paused.")
	} else {
		s.state = model.JobStateRunning
		s.log.Info().Str("job_id", s.job.ID).Msg("Download resumed.")
	}
	s.job.UpdateState(s.state)
	return paused, nil
}

// Cancel requests cancellation; it takes effect at the next track boundary
func (s *Service) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsActive() {
		return model.ErrNoJob
	}
	if s.control.isCancelled() {
		return nil
	}

	s.control.cancel()
	s.log.Info().Str("job_id", s.job.ID).Msg("Cancel requested")
	return nil
}

// Wait blocks until the current job loop and poller have exited
func (s *Service) Wait() {
	s.wg.Wait()
}

// State returns the current job state
func (s *Service) State() model.JobState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Job returns a snapshot of the current or last job
func (s *Service) Job() (*model.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.job == nil {
		return nil, false
	}
	return s.job.Clone(), true
}

// CurrentSpeed returns the last speed sample in bytes per second
func (s *Service) CurrentSpeed() float64 {
	return s.speed.Load()
}

// noopSink discards status updates
type noopSink struct{}

func (noopSink) OnTracks(current, next string, index, total int) {}
func (noopSink) OnProgress(progress model.Progress)              {}
func (noopSink) OnSpeed(kbPerSecond float64)                     {}
func (noopSink) OnFinished(result model.JobResult)               {}
