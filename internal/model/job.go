package model

import (
	"time"
)

// TrackItem represents a single track in a job
type TrackItem struct {
	Index      int        `json:"index"`
	Name       string     `json:"name"`
	Status     ItemStatus `json:"status"`
	Error      string     `json:"error,omitempty"`
	OutputPath string     `json:"output_path,omitempty"` // file reported by the fetch client
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Job represents one run of the orchestrator over a full track list
type Job struct {
	ID           string      `json:"id"`
	Tracks       []string    `json:"tracks"`
	Items        []TrackItem `json:"items"`
	Format       Format      `json:"format"`
	Destination  string      `json:"destination"`
	State        JobState    `json:"state"`
	CurrentIndex int         `json:"current_index"`
	Completed    int         `json:"completed"`
	Error        string      `json:"error,omitempty"`
	StartedAt    time.Time   `json:"started_at"`
	FinishedAt   time.Time   `json:"finished_at"`
}

// NewJob creates a job in Idle state with one pending item per track.
// The track slice is copied so the caller cannot mutate the job's list.
func NewJob(id string, tracks []string, format Format, destination string) *Job {
	now := time.Now()
	own := make([]string, len(tracks))
	copy(own, tracks)

	items := make([]TrackItem, len(own))
	for i, name := range own {
		items[i] = TrackItem{
			Index:     i,
			Name:      name,
			Status:    ItemStatusPending,
			UpdatedAt: now,
		}
	}

	return &Job{
		ID:          id,
		Tracks:      own,
		Items:       items,
		Format:      format,
		Destination: destination,
		State:       JobStateIdle,
	}
}

// Total returns the number of tracks in the job
func (j *Job) Total() int {
	return len(j.Tracks)
}

// UpdateState updates the job state
func (j *Job) UpdateState(state JobState) {
	j.State = state
}

// Advance moves the current index to i, clamped to [0, Total]
func (j *Job) Advance(i int) {
	if i < 0 {
		i = 0
	}
	if i > j.Total() {
		i = j.Total()
	}
	j.CurrentIndex = i
}

// UpdateItemStatus updates the status of a specific item
func (j *Job) UpdateItemStatus(index int, status ItemStatus, errMsg string) {
	if index < 0 || index >= len(j.Items) {
		return
	}
	j.Items[index].Status = status
	j.Items[index].Error = errMsg
	j.Items[index].UpdatedAt = time.Now()
}

// UpdateItemOutputPath records the file written for a specific item
func (j *Job) UpdateItemOutputPath(index int, outputPath string) {
	if index < 0 || index >= len(j.Items) {
		return
	}
	j.Items[index].OutputPath = outputPath
	j.Items[index].UpdatedAt = time.Now()
}

// SkipPending marks every item that was never reached as skipped
func (j *Job) SkipPending() {
	for i := range j.Items {
		if j.Items[i].Status == ItemStatusPending {
			j.UpdateItemStatus(i, ItemStatusSkipped, "")
		}
	}
}

// FailedTracks returns names of tracks whose fetch failed
func (j *Job) FailedTracks() []string {
	var failed []string
	for _, item := range j.Items {
		if item.Status == ItemStatusError {
			failed = append(failed, item.Name)
		}
	}
	return failed
}

// CountByStatus returns how many items currently have the given status
func (j *Job) CountByStatus(status ItemStatus) int {
	n := 0
	for _, item := range j.Items {
		if item.Status == status {
			n++
		}
	}
	return n
}

// NextTrack returns the track after index i, or "" when i is the last one
func (j *Job) NextTrack(i int) string {
	if i+1 < len(j.Tracks) {
		return j.Tracks[i+1]
	}
	return ""
}

// Progress returns a snapshot computed against now
func (j *Job) Progress(now time.Time) Progress {
	var elapsed time.Duration
	if !j.StartedAt.IsZero() {
		end := now
		if !j.FinishedAt.IsZero() {
			end = j.FinishedAt
		}
		elapsed = end.Sub(j.StartedAt)
	}
	return Progress{
		Completed: j.Completed,
		Total:     j.Total(),
		Elapsed:   elapsed,
	}
}

// Clone returns a deep copy safe to hand to other goroutines
func (j *Job) Clone() *Job {
	c := *j
	c.Tracks = append([]string(nil), j.Tracks...)
	c.Items = append([]TrackItem(nil), j.Items...)
	return &c
}

// Result builds the terminal notification for the job
func (j *Job) Result() JobResult {
	return JobResult{
		JobID:     j.ID,
		State:     j.State,
		Total:     j.Total(),
		Attempted: j.Completed,
		Succeeded: j.CountByStatus(ItemStatusCompleted),
		Failed:    j.FailedTracks(),
		Error:     j.Error,
		Elapsed:   j.Progress(time.Now()).Elapsed,
	}
}

// JobResult is the terminal notification pushed to status sinks
type JobResult struct {
	JobID     string
	State     JobState
	Total     int
	Attempted int
	Succeeded int
	Failed    []string
	Error     string
	Elapsed   time.Duration
}

// FetchEvent is a structured progress event emitted by the fetch client
type FetchEvent struct {
	Status              FetchStatus
	SpeedBytesPerSecond float64
	DownloadedBytes     int
	TotalBytes          int
	Filename            string
}
