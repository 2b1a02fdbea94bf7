// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package zipcrack

import (
	"io"
	"log/slog"

	"github.com/salvor-project/salvor/lib/progress"
)

// Options configures one recovery run over an index.
type Options struct {
	// Alphabet and Length define the enumeration space when no
	// wordlist is given.
	Alphabet Alphabet
	Length   int

	// Wordlist, if non-nil, supplies candidates line by line instead
	// of the alphabet enumeration.
	Wordlist io.Reader

	// Progress counts tested candidates. Optional.
	Progress *progress.Counter

	// Logger receives run-level records. Nil discards them.
	Logger *slog.Logger
}

// Run executes one search over the index and returns the assembled
// recovered text. An empty string means no candidate matched any
// bucket, which is a valid outcome for this kind of search.
func Run(index *Index, options Options) (string, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if options.Wordlist != nil {
		logger.Info("searching wordlist candidates",
			"size", index.Size,
			"buckets", index.Len())
		if err := SearchLines(index, options.Wordlist, options.Progress); err != nil {
			return "", err
		}
	} else {
		logger.Info("enumerating alphabet candidates",
			"size", index.Size,
			"buckets", index.Len(),
			"alphabet_size", len(options.Alphabet),
			"length", options.Length)
		engine := &Engine{
			Index:    index,
			Alphabet: options.Alphabet,
			Length:   options.Length,
			Progress: options.Progress,
		}
		engine.Search()
	}

	recovered := Assemble(index)
	logger.Info("search complete",
		"checked", options.Progress.Load(),
		"recovered_bytes", len(recovered))
	return recovered, nil
}
