package model

// JobState represents the lifecycle state of a download job
type JobState string

const (
	// JobStateIdle means no job has been started yet
	JobStateIdle JobState = "Idle"

	// JobStateRunning means the job loop is processing tracks
	JobStateRunning JobState = "Running"

	// JobStatePaused means the loop will wait at the next track boundary
	JobStatePaused JobState = "Paused"

	// JobStateCancelled means the user cancelled the job
	JobStateCancelled JobState = "Cancelled"

	// JobStateCompleted means every track was processed
	JobStateCompleted JobState = "Completed"

	// JobStateFailed means the loop aborted with an unexpected error
	JobStateFailed JobState = "Failed"
)

// String returns the string representation of JobState
func (js JobState) String() string {
	return string(js)
}

// IsActive returns true while the job loop owns the state
func (js JobState) IsActive() bool {
	return js == JobStateRunning || js == JobStatePaused
}

// IsFinished returns true if the job reached a terminal state
func (js JobState) IsFinished() bool {
	return js == JobStateCancelled || js == JobStateCompleted || js == JobStateFailed
}

// ItemStatus represents the status of a single track within a job
type ItemStatus string

const (
	ItemStatusPending     ItemStatus = "pending"
	ItemStatusDownloading ItemStatus = "downloading"
	ItemStatusCompleted   ItemStatus = "completed"
	ItemStatusError       ItemStatus = "error"
	// Skipped is used for tracks never reached because the job was cancelled
	ItemStatusSkipped ItemStatus = "skipped"
)

// FetchStatus is the kind of a progress event emitted by the fetch client
type FetchStatus string

const (
	FetchStatusDownloading FetchStatus = "downloading"
	FetchStatusFinished    FetchStatus = "finished"
)

// Format selects what the fetch client extracts from the resolved media
type Format string

const (
	// FormatAudio extracts the best audio stream to mp3
	FormatAudio Format = "audio"

	// FormatVideoAudio merges best video and best audio into mp4
	FormatVideoAudio Format = "videoAudio"
)

// Formats returns all supported formats in display order
func Formats() []Format {
	return []Format{FormatAudio, FormatVideoAudio}
}

// IsValid reports whether f is a known format
func (f Format) IsValid() bool {
	return f == FormatAudio || f == FormatVideoAudio
}

// Extension returns the container extension the format produces
func (f Format) Extension() string {
	if f == FormatVideoAudio {
		return "mp4"
	}
	return "mp3"
}
