package download

import (
	"math"
	"sync/atomic"
)

// SpeedSample holds the most recent download rate in bytes per second.
// The fetch progress callback writes it and the poller reads it.
type SpeedSample struct {
	bits atomic.Uint64
}

// Store records a new rate; negative and NaN values are stored as zero
func (s *SpeedSample) Store(bytesPerSecond float64) {
	if bytesPerSecond < 0 || math.IsNaN(bytesPerSecond) {
		bytesPerSecond = 0
	}
	s.bits.Store(math.Float64bits(bytesPerSecond))
}

// Load returns the last recorded rate
func (s *SpeedSample) Load() float64 {
	return math.Float64frombits(s.bits.Load())
}

// Reset sets the rate back to zero
func (s *SpeedSample) Reset() {
	s.bits.Store(0)
}
