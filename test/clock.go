package test

import (
	"time"

	"github.com/raulk/clock"
)

// AdvanceUntil keeps moving the mock clock forward by step until done is
// closed, so that code blocked on the clock in another goroutine can finish.
func AdvanceUntil(mock *clock.Mock, step time.Duration, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
			mock.Add(step)
			time.Sleep(time.Millisecond)
		}
	}
}
