package download

import (
	"time"

	"github.com/ytget/songbatch/internal/model"
)

// pollSpeed pushes the speed sample to push every interval until done closes
func pollSpeed(sample *SpeedSample, interval time.Duration, done <-chan struct{}, push func(kbPerSecond, bytesPerSecond float64)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			bps := sample.Load()
			push(model.KBPerSecond(bps), bps)
		}
	}
}
