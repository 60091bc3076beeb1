package commands

import (
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("working")
	s.start()
	time.Sleep(120 * time.Millisecond)
	s.stopWithSuccess("done")

	select {
	case <-s.done:
	default:
		t.Error("done channel should be closed after stop")
	}
}

func TestSpinnerDoubleStop(t *testing.T) {
	s := newSpinner("working")
	s.start()

	// Must not panic on a second stop.
	s.stopWithError()
	s.stopWithError()
	s.stopWithSuccess("still fine")
}
