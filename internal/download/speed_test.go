package download

import (
	"math"
	"testing"
	"time"
)

func TestSpeedSample(t *testing.T) {
	var s SpeedSample

	if s.Load() != 0 {
		t.Errorf("Expected zero value 0, got %v", s.Load())
	}

	s.Store(1536)
	if s.Load() != 1536 {
		t.Errorf("Expected 1536, got %v", s.Load())
	}

	s.Store(-5)
	if s.Load() != 0 {
		t.Errorf("Expected negative stored as 0, got %v", s.Load())
	}

	s.Store(math.NaN())
	if s.Load() != 0 {
		t.Errorf("Expected NaN stored as 0, got %v", s.Load())
	}

	s.Store(10)
	s.Reset()
	if s.Load() != 0 {
		t.Errorf("Expected 0 after Reset, got %v", s.Load())
	}
}

func TestPollSpeed(t *testing.T) {
	var s SpeedSample
	s.Store(4096)

	done := make(chan struct{})
	pushed := make(chan float64, 16)
	exited := make(chan struct{})

	go func() {
		pollSpeed(&s, time.Millisecond, done, func(kbps, bps float64) {
			select {
			case pushed <- kbps:
			default:
			}
		})
		close(exited)
	}()

	select {
	case kbps := <-pushed:
		if kbps != 4 {
			t.Errorf("Expected 4 KB/s, got %v", kbps)
		}
	case <-time.After(testTimeout):
		t.Fatal("poller never pushed")
	}

	close(done)
	select {
	case <-exited:
	case <-time.After(testTimeout):
		t.Fatal("poller did not exit after done closed")
	}
}
