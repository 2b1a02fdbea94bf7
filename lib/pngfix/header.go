// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package pngfix repairs PNG files whose IHDR width or height was
// corrupted without updating the chunk's CRC-32. The stored CRC still
// commits to the original dimensions, so the true value of the
// damaged field can be recovered by exhaustive search: race one
// brute-force counter per field hypothesis and keep whichever
// candidate makes the stored checksum verify again.
package pngfix

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/salvor-project/salvor/lib/checksum"
)

// IHDR layout inside a PNG buffer. The 8-byte signature and the
// 4-byte chunk length precede the CRC-covered region, which runs from
// the chunk tag through the last auxiliary byte; the stored CRC-32
// follows it big-endian.
const (
	tagOffset      = 12
	widthOffset    = 16
	heightOffset   = 20
	auxOffset      = 24
	checksumOffset = 29
	headerEnd      = 33
)

var (
	// ErrMalformedHeader reports input that cannot be parsed as a PNG
	// IHDR region: a buffer shorter than the fixed header span, or a
	// chunk tag other than "IHDR" where one is required.
	ErrMalformedHeader = errors.New("pngfix: malformed IHDR header")

	// ErrNoMatch reports that neither the width nor the height
	// hypothesis produced the stored checksum within the configured
	// attempt limit.
	ErrNoMatch = errors.New("pngfix: neither field hypothesis matched within the attempt limit")
)

// Header is the parsed IHDR region of a PNG buffer: the chunk tag,
// the two 32-bit big-endian dimensions, the five auxiliary bytes (bit
// depth, color type, compression, filter, interlace), and the stored
// CRC-32 that covers tag through auxiliary bytes.
type Header struct {
	Tag            [4]byte
	Width          uint32
	Height         uint32
	Aux            [5]byte
	StoredChecksum uint32
}

// Field identifies which dimension a checksum computation or a repair
// substitutes.
type Field int

const (
	FieldWidth Field = iota
	FieldHeight
)

func (f Field) String() string {
	switch f {
	case FieldWidth:
		return "width"
	case FieldHeight:
		return "height"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// ParseHeader extracts the IHDR region from a PNG buffer. It fails
// with ErrMalformedHeader when the buffer is shorter than the header
// span or the chunk tag is not "IHDR". The PNG signature bytes before
// the chunk are not inspected; only the checksum-relevant region is.
func ParseHeader(buffer []byte) (Header, error) {
	if len(buffer) < headerEnd {
		return Header{}, fmt.Errorf("%w: buffer is %d bytes, need at least %d",
			ErrMalformedHeader, len(buffer), headerEnd)
	}

	var header Header
	copy(header.Tag[:], buffer[tagOffset:widthOffset])
	if header.Tag != [4]byte{'I', 'H', 'D', 'R'} {
		return Header{}, fmt.Errorf("%w: chunk tag %q where IHDR expected",
			ErrMalformedHeader, header.Tag[:])
	}

	header.Width = binary.BigEndian.Uint32(buffer[widthOffset:heightOffset])
	header.Height = binary.BigEndian.Uint32(buffer[heightOffset:auxOffset])
	copy(header.Aux[:], buffer[auxOffset:checksumOffset])
	header.StoredChecksum = binary.BigEndian.Uint32(buffer[checksumOffset:headerEnd])
	return header, nil
}

// Checksum computes the CRC-32 over the header's own fields, the
// "as-is" verification value to compare against StoredChecksum.
func (h Header) Checksum() uint32 {
	return h.ChecksumWith(FieldWidth, h.Width)
}

// ChecksumWith computes the CRC-32 with the given field replaced by
// value, holding the other field fixed. The checksum covers tag,
// width, height, and auxiliary bytes in file order; segment boundaries
// do not affect the result.
func (h Header) ChecksumWith(field Field, value uint32) uint32 {
	width, height := h.Width, h.Height
	switch field {
	case FieldWidth:
		width = value
	case FieldHeight:
		height = value
	}

	var widthBytes, heightBytes [4]byte
	binary.BigEndian.PutUint32(widthBytes[:], width)
	binary.BigEndian.PutUint32(heightBytes[:], height)
	return checksum.Sum(h.Tag[:], widthBytes[:], heightBytes[:], h.Aux[:])
}

// Verifies reports whether the header's own fields reproduce the
// stored checksum, meaning neither dimension needs repair.
func (h Header) Verifies() bool {
	return h.Checksum() == h.StoredChecksum
}
