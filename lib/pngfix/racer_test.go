// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package pngfix

import (
	"errors"
	"testing"
	"time"

	"github.com/salvor-project/salvor/lib/progress"
	"github.com/salvor-project/salvor/lib/testutil"
)

func TestRaceRecoversHeight(t *testing.T) {
	header, err := ParseHeader(pristineHeader())
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	header.Height = 0x4E8 // tampered; stored CRC commits to 0x424

	counter := &progress.Counter{}
	match, err := Race(header, RaceOptions{Progress: counter})
	if err != nil {
		t.Fatalf("Race: %v", err)
	}

	if match.Field != FieldHeight {
		t.Errorf("match.Field = %v, want height", match.Field)
	}
	if match.Value != 0x424 {
		t.Errorf("match.Value = %#x, want 0x424", match.Value)
	}
	if counter.Load() == 0 {
		t.Error("progress counter never incremented")
	}
}

func TestRaceRecoversWidth(t *testing.T) {
	header, err := ParseHeader(pristineHeader())
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	header.Width = 0x35 // tampered; stored CRC commits to 0x135

	match, err := Race(header, RaceOptions{})
	if err != nil {
		t.Fatalf("Race: %v", err)
	}

	if match.Field != FieldWidth {
		t.Errorf("match.Field = %v, want width", match.Field)
	}
	if match.Value != 0x135 {
		t.Errorf("match.Value = %#x, want 0x135", match.Value)
	}
}

func TestRaceMaxAttemptsExhausted(t *testing.T) {
	// For any stored checksum exactly one width candidate and one
	// height candidate match (the 4-byte window map is a bijection).
	// On the pristine header those candidates are 0x135 and 0x424,
	// both beyond a 100-attempt cap, so exhaustion is deterministic.
	header, err := ParseHeader(pristineHeader())
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}

	counter := &progress.Counter{}
	_, err = Race(header, RaceOptions{MaxAttempts: 100, Progress: counter})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("Race error = %v, want ErrNoMatch", err)
	}

	// Both workers test their full allowance.
	if got := counter.Load(); got != 200 {
		t.Errorf("attempts = %d, want 200", got)
	}
}

func TestRaceUnboundedReturnsOnMatch(t *testing.T) {
	// The unbounded race has no failure path, so a regression that
	// loses the winning result would hang forever. Run it off the test
	// goroutine with a timeout valve.
	header, err := ParseHeader(pristineHeader())
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	header.Width = 0x35

	results := make(chan Match, 1)
	go func() {
		match, err := Race(header, RaceOptions{})
		if err != nil {
			t.Errorf("Race: %v", err)
		}
		results <- match
	}()

	match := testutil.RequireReceive(t, results, 30*time.Second, "waiting for the race winner")
	if match.Field != FieldWidth || match.Value != 0x135 {
		t.Fatalf("match = %+v, want width 0x135", match)
	}
}

func TestRaceFindsMatchWithinCap(t *testing.T) {
	header, err := ParseHeader(pristineHeader())
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	header.Height = 0x4E8

	// 0x424 is candidate 1061 of the height worker, comfortably
	// inside the cap.
	match, err := Race(header, RaceOptions{MaxAttempts: 1 << 16})
	if err != nil {
		t.Fatalf("Race: %v", err)
	}
	if match.Field != FieldHeight || match.Value != 0x424 {
		t.Fatalf("match = %+v, want height 0x424", match)
	}
}
