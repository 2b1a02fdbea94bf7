// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package wordlist

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const fixtureText = "flag\nsalt\npepper\n"

func writeFixture(t *testing.T, name string, encode func(io.Writer) (io.WriteCloser, error)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	writer, err := encode(file)
	if err != nil {
		t.Fatalf("encoder: %v", err)
	}
	if _, err := writer.Write([]byte(fixtureText)); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}
	return path
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func TestOpenFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		encode func(io.Writer) (io.WriteCloser, error)
	}{
		{
			name:   "plain",
			format: FormatPlain,
			encode: func(w io.Writer) (io.WriteCloser, error) {
				return nopWriteCloser{w}, nil
			},
		},
		{
			name:   "gzip",
			format: FormatGzip,
			encode: func(w io.Writer) (io.WriteCloser, error) {
				return gzip.NewWriter(w), nil
			},
		},
		{
			name:   "zstd",
			format: FormatZstd,
			encode: func(w io.Writer) (io.WriteCloser, error) {
				return zstd.NewWriter(w)
			},
		},
		{
			name:   "lz4",
			format: FormatLZ4,
			encode: func(w io.Writer) (io.WriteCloser, error) {
				return lz4.NewWriter(w), nil
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// The extension is deliberately wrong everywhere:
			// detection must go by content.
			path := writeFixture(t, "words.txt", test.encode)

			reader, err := Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer reader.Close()

			if reader.Format() != test.format {
				t.Errorf("Format = %v, want %v", reader.Format(), test.format)
			}
			content, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(content) != fixtureText {
				t.Errorf("content = %q, want %q", content, fixtureText)
			}
		})
	}
}

func TestOpenShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny")
	if err := os.WriteFile(path, []byte("ab"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	reader, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()

	if reader.Format() != FormatPlain {
		t.Errorf("Format = %v, want plain", reader.Format())
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(content) != "ab" {
		t.Errorf("content = %q, want ab", content)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("Open succeeded on a missing file")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		header []byte
		want   Format
	}{
		{[]byte{0x1F, 0x8B, 0x08, 0x00}, FormatGzip},
		{[]byte{0x28, 0xB5, 0x2F, 0xFD}, FormatZstd},
		{[]byte{0x04, 0x22, 0x4D, 0x18}, FormatLZ4},
		{[]byte("word"), FormatPlain},
		{[]byte{0x28, 0xB5}, FormatPlain},
		{nil, FormatPlain},
	}
	for _, test := range tests {
		if got := DetectFormat(test.header); got != test.want {
			t.Errorf("DetectFormat(% x) = %v, want %v", test.header, got, test.want)
		}
	}
}
