package model

import (
	"errors"
	"fmt"
)

// ErrJobActive is returned when a job is started while another one is running
var ErrJobActive = errors.New("a download job is already running")

// ErrNoJob is returned by control commands when no job is active
var ErrNoJob = errors.New("no active download job")

// ConfigError means a required input was missing before start
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s is required", e.Field)
}

// FormatError means the input file is not in a supported layout
type FormatError struct {
	Path      string
	Extension string
	// Reason is set when the extension is known but the content is not usable
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s input %s: %s", e.Extension, e.Path, e.Reason)
	}
	return fmt.Sprintf("unsupported input format %q: %s", e.Extension, e.Path)
}

// IOError means the input file could not be read
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// FetchError means a single track failed to download
type FetchError struct {
	Track string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %q: %v", e.Track, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// JobError means the job loop aborted unexpectedly
type JobError struct {
	JobID string
	Err   error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job %s failed: %v", e.JobID, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// IsBlocking reports whether err must be shown to the user as a blocking
// notification rather than only logged
func IsBlocking(err error) bool {
	var cfgErr *ConfigError
	var fmtErr *FormatError
	var jobErr *JobError
	return errors.As(err, &cfgErr) || errors.As(err, &fmtErr) || errors.As(err, &jobErr) || errors.Is(err, ErrJobActive)
}
