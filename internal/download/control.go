package download

import "sync"

// jobControl carries the pause and cancel commands from control handlers to
// the job loop. The loop observes them only at track boundaries.
type jobControl struct {
	mu        sync.Mutex
	cond      *sync.Cond
	paused    bool
	cancelled bool
	done      chan struct{}
	closeOnce sync.Once
}

func newJobControl() *jobControl {
	c := &jobControl{done: make(chan struct{})}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// togglePause flips the paused flag and returns the new value
func (c *jobControl) togglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.paused = !c.paused
	if !c.paused {
		c.cond.Broadcast()
	}
	return c.paused
}

// cancel requests cancellation and wakes a paused loop
func (c *jobControl) cancel() {
	c.mu.Lock()
	c.cancelled = true
	c.cond.Broadcast()
	c.mu.Unlock()

	c.stop()
}

// stop closes done exactly once; the poller exits on it
func (c *jobControl) stop() {
	c.closeOnce.Do(func() { close(c.done) })
}

// awaitTurn blocks while paused and reports whether the job was cancelled
func (c *jobControl) awaitTurn() (cancelled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.paused && !c.cancelled {
		c.cond.Wait()
	}
	return c.cancelled
}

func (c *jobControl) isPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

func (c *jobControl) isCancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}
