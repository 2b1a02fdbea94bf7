// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for code that reports progress or waits
// on intervals. Production code injects Real(); tests inject Fake()
// and advance time deterministically instead of sleeping.
package clock

import "time"

// Clock is the time surface used by salvor's long-running searches.
// Anything that would call time.Now, time.After, time.NewTicker, or
// time.Sleep takes a Clock instead so tests never touch the wall
// clock.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once
	// duration d has elapsed. If d <= 0, the channel receives
	// immediately.
	After(d time.Duration) <-chan time.Time

	// NewTicker returns a Ticker delivering ticks on its C channel at
	// the given interval. Panics if d <= 0.
	NewTicker(d time.Duration) *Ticker

	// Sleep pauses the calling goroutine for at least duration d.
	Sleep(d time.Duration)
}

// Ticker wraps a periodic timer. Read ticks from C; call Stop when
// done. C has capacity 1, matching time.Ticker: if the consumer falls
// behind, ticks are dropped rather than queued.
type Ticker struct {
	// C delivers ticks.
	C <-chan time.Time

	stopFunc func()
}

// Stop turns off the ticker. No ticks are sent on C after Stop
// returns. Stop does not close C.
func (t *Ticker) Stop() { t.stopFunc() }
