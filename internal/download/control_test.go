package download

import (
	"testing"
	"time"
)

func TestJobControl_TogglePause(t *testing.T) {
	c := newJobControl()

	if !c.togglePause() || !c.isPaused() {
		t.Error("Expected paused after first toggle")
	}
	if c.togglePause() || c.isPaused() {
		t.Error("Expected running after second toggle")
	}
}

func TestJobControl_AwaitTurnBlocksWhilePaused(t *testing.T) {
	c := newJobControl()
	c.togglePause()

	result := make(chan bool, 1)
	go func() { result <- c.awaitTurn() }()

	select {
	case <-result:
		t.Fatal("awaitTurn returned while paused")
	case <-time.After(30 * time.Millisecond):
	}

	c.togglePause()
	select {
	case cancelled := <-result:
		if cancelled {
			t.Error("Expected not cancelled after resume")
		}
	case <-time.After(testTimeout):
		t.Fatal("awaitTurn did not wake on resume")
	}
}

func TestJobControl_CancelWakesAndClosesDone(t *testing.T) {
	c := newJobControl()
	c.togglePause()

	result := make(chan bool, 1)
	go func() { result <- c.awaitTurn() }()

	c.cancel()
	c.cancel()

	select {
	case cancelled := <-result:
		if !cancelled {
			t.Error("Expected cancelled")
		}
	case <-time.After(testTimeout):
		t.Fatal("awaitTurn did not wake on cancel")
	}

	select {
	case <-c.done:
	default:
		t.Error("Expected done to be closed")
	}
	if !c.isCancelled() {
		t.Error("Expected isCancelled")
	}
}
