// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package zipcrack

import (
	"strings"
	"testing"

	"github.com/salvor-project/salvor/lib/progress"
)

func TestRunRecoversArchiveEntry(t *testing.T) {
	path := writeArchive(t, []archiveEntry{
		{name: "demo.txt", content: "flag", stored: true},
	})
	index, err := BuildIndex(path, 4)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	alphabet, _ := Preset("lower")
	counter := &progress.Counter{}
	recovered, err := Run(index, Options{
		Alphabet: alphabet,
		Length:   4,
		Progress: counter,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if recovered != "flag" {
		t.Errorf("recovered = %q, want flag", recovered)
	}
	if counter.Load() != 26*26*26*26 {
		t.Errorf("checked %d candidates, want the full space", counter.Load())
	}
}

func TestRunWordlistMode(t *testing.T) {
	path := writeArchive(t, []archiveEntry{
		{name: "demo.txt", content: "flag"},
	})
	index, err := BuildIndex(path, 4)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	recovered, err := Run(index, Options{
		Wordlist: strings.NewReader("salt\nflag\nmisc\n"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if recovered != "flag" {
		t.Errorf("recovered = %q, want flag", recovered)
	}
}
