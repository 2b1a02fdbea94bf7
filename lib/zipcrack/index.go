// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package zipcrack recovers the content of tiny archive entries from
// central directory metadata alone. A ZIP central directory stores
// each entry's CRC-32 and uncompressed size even when the content is
// compressed or password protected, so for short entries the plaintext
// can be found by enumerating every candidate of the right length and
// comparing checksums.
package zipcrack

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yeka/zip"
)

// ErrArchive reports an archive that cannot be opened or parsed.
var ErrArchive = errors.New("zipcrack: cannot read archive")

// Entry is one central directory record, read without decompression.
type Entry struct {
	Name             string `json:"name" cbor:"name"`
	Checksum         uint32 `json:"checksum" cbor:"checksum"`
	CompressedSize   uint64 `json:"compressedSize" cbor:"compressedSize"`
	UncompressedSize uint64 `json:"uncompressedSize" cbor:"uncompressedSize"`
	Method           string `json:"method" cbor:"method"`
	Encrypted        bool   `json:"encrypted" cbor:"encrypted"`
}

// Index maps checksums to buckets for one exact uncompressed size.
type Index struct {
	Size    uint64
	buckets map[uint32]*Bucket
}

// BuildIndex scans the archive's central directory and groups entries
// whose uncompressed size equals exactSize into buckets by checksum.
// Content is never read, so encrypted entries qualify like any other.
// Entries repeating an already seen checksum fold into the existing
// bucket; the first entry's name stays as the label.
func BuildIndex(path string, exactSize uint64) (*Index, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	defer reader.Close()

	index := &Index{Size: exactSize, buckets: make(map[uint32]*Bucket)}
	for _, file := range reader.File {
		if file.UncompressedSize64 != exactSize {
			continue
		}
		if _, ok := index.buckets[file.CRC32]; ok {
			continue
		}
		index.buckets[file.CRC32] = &Bucket{Label: file.Name, Checksum: file.CRC32}
	}
	return index, nil
}

// Lookup returns the bucket holding a checksum, if any.
func (index *Index) Lookup(sum uint32) (*Bucket, bool) {
	bucket, ok := index.buckets[sum]
	return bucket, ok
}

// Len returns the number of buckets.
func (index *Index) Len() int {
	return len(index.buckets)
}

// Buckets returns the buckets sorted by label. Labels are unique per
// bucket, so the order is total.
func (index *Index) Buckets() []*Bucket {
	buckets := make([]*Bucket, 0, len(index.buckets))
	for _, bucket := range index.buckets {
		buckets = append(buckets, bucket)
	}
	slices.SortFunc(buckets, func(a, b *Bucket) int {
		return strings.Compare(a.Label, b.Label)
	})
	return buckets
}

// Inventory lists every central directory record in archive order,
// again without decompressing anything.
func Inventory(path string) ([]Entry, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	defer reader.Close()

	entries := make([]Entry, 0, len(reader.File))
	for _, file := range reader.File {
		entries = append(entries, Entry{
			Name:             file.Name,
			Checksum:         file.CRC32,
			CompressedSize:   file.CompressedSize64,
			UncompressedSize: file.UncompressedSize64,
			Method:           methodName(file.Method),
			Encrypted:        file.IsEncrypted(),
		})
	}
	return entries, nil
}

func methodName(method uint16) string {
	switch method {
	case zip.Store:
		return "store"
	case zip.Deflate:
		return "deflate"
	default:
		return fmt.Sprintf("method-%d", method)
	}
}
