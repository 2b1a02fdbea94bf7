// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package pngfix

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/salvor-project/salvor/lib/progress"
)

// Match is a winning race result: the field assumed corrupt and the
// replacement value that reproduces the stored checksum.
type Match struct {
	Field Field
	Value uint32
}

// RaceOptions tunes the brute-force race.
type RaceOptions struct {
	// MaxAttempts caps the number of candidates each worker tests.
	// Zero means unbounded: the workers cycle the 32-bit space until
	// one of them matches, and if neither hypothesis holds, Race
	// never returns.
	MaxAttempts uint64

	// Progress, if non-nil, is incremented once per tested candidate
	// across both workers.
	Progress *progress.Counter
}

// Race brute-forces replacement values for width and height
// concurrently: one worker substitutes ascending candidates into the
// width field holding height fixed, the other mirrors it. The first
// worker whose candidate reproduces the stored checksum sets a shared
// cancellation flag and wins; the loser checks the flag once per
// iteration and exits, at worst a few iterations later.
//
// At most one field is assumed corrupt. If that assumption is wrong
// and MaxAttempts is zero, neither worker ever matches and the call
// blocks forever; callers wanting a bounded search set MaxAttempts
// and handle ErrNoMatch.
func Race(header Header, options RaceOptions) (Match, error) {
	var found atomic.Bool
	results := make(chan Match, 1)
	var waitGroup sync.WaitGroup

	for _, field := range []Field{FieldWidth, FieldHeight} {
		waitGroup.Add(1)
		go func(field Field) {
			defer waitGroup.Done()

			var attempts uint64
			for candidate := uint32(0); ; candidate++ {
				if found.Load() {
					return
				}
				if options.MaxAttempts > 0 && attempts >= options.MaxAttempts {
					return
				}
				attempts++
				options.Progress.Add(1)

				if header.ChecksumWith(field, candidate) == header.StoredChecksum {
					// CompareAndSwap elects a single winner even if
					// both workers match in the same instant; the
					// buffered channel therefore never blocks.
					if found.CompareAndSwap(false, true) {
						results <- Match{Field: field, Value: candidate}
					}
					return
				}
				// candidate wraps past MaxUint32 back to zero, so an
				// unbounded worker keeps cycling the space.
			}
		}(field)
	}

	go func() {
		waitGroup.Wait()
		close(results)
	}()

	match, ok := <-results
	if !ok {
		return Match{}, fmt.Errorf("%w (limit %d per field)", ErrNoMatch, options.MaxAttempts)
	}
	return match, nil
}
