// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package wordlist opens candidate lists for streaming, transparently
// decompressing gzip, zstd, and lz4 files. Cracking wordlists are
// usually shipped compressed; the format is sniffed from leading magic
// bytes so callers never name it.
package wordlist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies the compression wrapping of a wordlist file.
type Format uint8

const (
	FormatPlain Format = iota
	FormatGzip
	FormatZstd
	FormatLZ4
)

func (format Format) String() string {
	switch format {
	case FormatPlain:
		return "plain"
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(format))
	}
}

var (
	gzipMagic = []byte{0x1F, 0x8B}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// DetectFormat sniffs a file's leading bytes. Anything without a known
// compression magic is treated as plain text.
func DetectFormat(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return FormatGzip
	case bytes.HasPrefix(header, zstdMagic):
		return FormatZstd
	case bytes.HasPrefix(header, lz4Magic):
		return FormatLZ4
	default:
		return FormatPlain
	}
}

// Reader streams decompressed wordlist bytes.
type Reader struct {
	format Format
	text   io.Reader
	close  func() error
}

// Open opens a wordlist file for reading. The decompression layer is
// chosen by magic bytes, so a renamed .gz file still reads correctly.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wordlist: %w", err)
	}

	buffered := bufio.NewReader(file)
	// A file shorter than the longest magic is necessarily plain.
	header, _ := buffered.Peek(4)
	format := DetectFormat(header)

	reader := &Reader{format: format}
	switch format {
	case FormatGzip:
		decoder, err := gzip.NewReader(buffered)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("gzip wordlist: %w", err)
		}
		reader.text = decoder
		reader.close = func() error {
			return errors.Join(decoder.Close(), file.Close())
		}
	case FormatZstd:
		decoder, err := zstd.NewReader(buffered)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("zstd wordlist: %w", err)
		}
		reader.text = decoder
		reader.close = func() error {
			decoder.Close()
			return file.Close()
		}
	case FormatLZ4:
		reader.text = lz4.NewReader(buffered)
		reader.close = file.Close
	default:
		reader.text = buffered
		reader.close = file.Close
	}
	return reader, nil
}

// Format reports the detected compression format.
func (reader *Reader) Format() Format {
	return reader.format
}

func (reader *Reader) Read(p []byte) (int, error) {
	return reader.text.Read(p)
}

// Close releases the decompressor, if any, and the underlying file.
func (reader *Reader) Close() error {
	return reader.close()
}
