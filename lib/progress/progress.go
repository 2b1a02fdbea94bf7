// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package progress tracks attempt counts across concurrent search
// workers and reports throughput while a brute force runs.
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/salvor-project/salvor/lib/clock"
)

// Counter counts candidates tested across workers. The zero value is
// ready to use. A nil *Counter is valid everywhere and counts nothing,
// so engines never need to guard their Add calls.
type Counter struct {
	value atomic.Uint64
}

// Add records n additional tested candidates.
func (c *Counter) Add(n uint64) {
	if c == nil {
		return
	}
	c.value.Add(n)
}

// Load returns the total number of candidates tested so far.
func (c *Counter) Load() uint64 {
	if c == nil {
		return 0
	}
	return c.value.Load()
}

// Reporter periodically reports a Counter's throughput. Two output
// modes, both optional: Status receives a carriage-return status line
// for interactive terminals, Logger receives structured progress
// records for piped runs.
type Reporter struct {
	// Counter is the counter to observe. Required.
	Counter *Counter

	// Clock drives the reporting interval. Nil means the real clock.
	Clock clock.Clock

	// Interval between reports. Zero means one second.
	Interval time.Duration

	// Status, if non-nil, receives "\r"-prefixed status lines.
	Status io.Writer

	// Logger, if non-nil, receives an Info record per interval.
	Logger *slog.Logger
}

// Start launches the reporting goroutine and returns a stop function.
// Stop blocks until the goroutine has exited; after it returns no
// further output is produced. If a status line was written, stop
// terminates it with a newline so the next shell prompt starts clean.
func (r *Reporter) Start() (stop func()) {
	timeSource := r.Clock
	if timeSource == nil {
		timeSource = clock.Real()
	}
	interval := r.Interval
	if interval <= 0 {
		interval = time.Second
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		// Baseline before the ticker registers: once a fake-clock test
		// has observed the ticker, the baseline is already in place.
		lastCount := r.Counter.Load()
		lastTime := timeSource.Now()
		wroteStatus := false

		ticker := timeSource.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				if wroteStatus {
					fmt.Fprintln(r.Status)
				}
				return
			case now := <-ticker.C:
				count := r.Counter.Load()
				var perSecond uint64
				if elapsed := now.Sub(lastTime).Seconds(); elapsed > 0 {
					perSecond = uint64(float64(count-lastCount) / elapsed)
				}
				lastCount = count
				lastTime = now

				if r.Status != nil {
					fmt.Fprintf(r.Status, "\rchecked %s candidates (%s/s) ",
						FormatCount(count), FormatCount(perSecond))
					wroteStatus = true
				}
				if r.Logger != nil {
					r.Logger.Info("search progress",
						"attempts", count,
						"per_second", perSecond)
				}
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}

// FormatCount renders large attempt counts compactly: 1234 stays
// "1234", 5400000 becomes "5.4M", 2100000000 becomes "2.1B".
func FormatCount(n uint64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1e9)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1e6)
	case n >= 10_000:
		return fmt.Sprintf("%.1fk", float64(n)/1e3)
	default:
		return strconv.FormatUint(n, 10)
	}
}
