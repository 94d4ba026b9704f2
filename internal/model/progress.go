package model

import (
	"fmt"
	"time"
)

// Progress is a derived snapshot of a job's advancement
type Progress struct {
	Completed int
	Total     int
	Elapsed   time.Duration
}

// Percent returns 100*completed/total truncated toward zero
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return 100 * p.Completed / p.Total
}

// Fraction returns completed/total in the 0.0 to 1.0 range
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// ETA returns elapsed / completed * (total - completed), or -1 if unknown
func (p Progress) ETA() time.Duration {
	if p.Completed <= 0 || p.Total <= 0 {
		return -1
	}
	remaining := p.Total - p.Completed
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(p.Elapsed) / float64(p.Completed) * float64(remaining))
}

// ETAString returns ETA formatted as mm:ss (hh:mm:ss past one hour), or "—" if unknown
func (p Progress) ETAString() string {
	return FormatDuration(p.ETA())
}

// FormatDuration renders d as mm:ss or hh:mm:ss, "—" for negative values
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "—"
	}

	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// KBPerSecond converts a bytes per second rate to kilobytes per second
func KBPerSecond(bytesPerSecond float64) float64 {
	return bytesPerSecond / 1024
}
