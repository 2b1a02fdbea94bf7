// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package pngfix

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/salvor-project/salvor/lib/checksum"
)

// pngSignature is the fixed 8-byte file signature preceding the first
// chunk.
var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

var (
	// ErrNotPNG reports a buffer that does not start with the PNG
	// signature.
	ErrNotPNG = errors.New("pngfix: missing PNG signature")

	// ErrTruncatedChunk reports a chunk whose declared length runs
	// past the end of the buffer.
	ErrTruncatedChunk = errors.New("pngfix: truncated chunk")
)

// Chunk is one chunk's audit record from ScanChunks.
type Chunk struct {
	// Offset is the byte position of the chunk's length field.
	Offset int64 `json:"offset" cbor:"offset"`

	// Type is the four-byte chunk type.
	Type string `json:"type" cbor:"type"`

	// Length is the declared data length.
	Length uint32 `json:"length" cbor:"length"`

	// Stored is the CRC-32 recorded after the chunk data.
	Stored uint32 `json:"stored" cbor:"stored"`

	// Computed is the CRC-32 recomputed over type and data.
	Computed uint32 `json:"computed" cbor:"computed"`

	// Valid is true when Stored equals Computed.
	Valid bool `json:"valid" cbor:"valid"`
}

// ScanChunks walks every chunk in a PNG buffer and recomputes its
// CRC-32 over the type and data bytes, the region the trailer commits
// to. Records are returned in file order; the walk stops after IEND
// or at the end of the buffer. Unlike Repair, which touches only the
// IHDR region, this is a whole-file audit: it finds which chunk a
// corruption landed in before any brute force is attempted.
func ScanChunks(buffer []byte) ([]Chunk, error) {
	if len(buffer) < len(pngSignature) || !bytes.Equal(buffer[:len(pngSignature)], pngSignature) {
		return nil, ErrNotPNG
	}

	var chunks []Chunk
	offset := int64(len(pngSignature))

	for offset < int64(len(buffer)) {
		if offset+8 > int64(len(buffer)) {
			return chunks, fmt.Errorf("%w: %d trailing bytes at offset %d",
				ErrTruncatedChunk, int64(len(buffer))-offset, offset)
		}

		length := binary.BigEndian.Uint32(buffer[offset : offset+4])
		dataEnd := offset + 8 + int64(length)
		crcEnd := dataEnd + 4
		if crcEnd > int64(len(buffer)) {
			return chunks, fmt.Errorf("%w: chunk at offset %d declares %d data bytes past end of file",
				ErrTruncatedChunk, offset, length)
		}

		chunkType := string(buffer[offset+4 : offset+8])
		stored := binary.BigEndian.Uint32(buffer[dataEnd:crcEnd])
		computed := checksum.Sum(buffer[offset+4 : dataEnd])

		chunks = append(chunks, Chunk{
			Offset:   offset,
			Type:     chunkType,
			Length:   length,
			Stored:   stored,
			Computed: computed,
			Valid:    stored == computed,
		})

		if chunkType == "IEND" {
			break
		}
		offset = crcEnd
	}

	return chunks, nil
}
