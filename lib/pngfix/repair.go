// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package pngfix

import (
	"encoding/binary"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/salvor-project/salvor/lib/progress"
)

// RepairOptions tunes Repair.
type RepairOptions struct {
	// MaxAttempts caps each racer worker. Zero means unbounded.
	MaxAttempts uint64

	// Progress, if non-nil, counts tested candidates. When nil,
	// Repair keeps its own counter so Outcome.Attempts is still
	// populated.
	Progress *progress.Counter

	// Logger, if non-nil, records the verification result and the
	// repaired field.
	Logger *slog.Logger
}

// Outcome describes what Repair did to the buffer.
type Outcome struct {
	// Repaired is false when the header already verified and the
	// buffer was left untouched.
	Repaired bool `json:"repaired" cbor:"repaired"`

	// Field names the dimension that was overwritten. Only meaningful
	// when Repaired is true.
	Field Field `json:"-" cbor:"-"`

	// FieldName is Field rendered for reports ("width" or "height").
	FieldName string `json:"field,omitempty" cbor:"field,omitempty"`

	// Value is the recovered field value. Only meaningful when
	// Repaired is true.
	Value uint32 `json:"value,omitempty" cbor:"value,omitempty"`

	// Attempts is the number of candidates tested across both racer
	// workers. Zero when the header already verified.
	Attempts uint64 `json:"attempts" cbor:"attempts"`

	// Checksum is the stored CRC-32 the header verifies against.
	Checksum uint32 `json:"checksum" cbor:"checksum"`
}

// Repair verifies the IHDR region of buffer and, when the stored
// checksum does not match, races the two field hypotheses and patches
// the winning value into the buffer in place. Exactly one of the
// width/height fields is modified on a successful repair; every other
// byte is left as it was. A header that already verifies is returned
// as a no-op outcome without starting the race.
func Repair(buffer []byte, options RepairOptions) (Outcome, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	header, err := ParseHeader(buffer)
	if err != nil {
		return Outcome{}, err
	}

	if header.Verifies() {
		logger.Info("header checksum already consistent",
			"checksum", header.StoredChecksum)
		return Outcome{Checksum: header.StoredChecksum}, nil
	}

	counter := options.Progress
	if counter == nil {
		counter = &progress.Counter{}
	}

	match, err := Race(header, RaceOptions{
		MaxAttempts: options.MaxAttempts,
		Progress:    counter,
	})
	if err != nil {
		return Outcome{Attempts: counter.Load()}, err
	}

	switch match.Field {
	case FieldWidth:
		binary.BigEndian.PutUint32(buffer[widthOffset:heightOffset], match.Value)
	case FieldHeight:
		binary.BigEndian.PutUint32(buffer[heightOffset:auxOffset], match.Value)
	}

	logger.Info("repaired header field",
		"field", match.Field.String(),
		"value", match.Value,
		"attempts", counter.Load())

	return Outcome{
		Repaired:  true,
		Field:     match.Field,
		FieldName: match.Field.String(),
		Value:     match.Value,
		Attempts:  counter.Load(),
		Checksum:  header.StoredChecksum,
	}, nil
}

// DefaultOutputPath derives the output filename for a repaired PNG:
// the input's stem with "-fixed.png" appended, in the same directory.
func DefaultOutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(inputPath), stem+"-fixed.png")
}
