// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package checksum computes the IEEE 802.3 CRC-32 shared by PNG chunk
// trailers and ZIP central-directory entries (polynomial 0xEDB88320,
// reflected, initial value 0xFFFFFFFF, final complement).
package checksum

import "hash/crc32"

// Sum returns the CRC-32 of the segments as if they were one
// contiguous buffer. Segment boundaries are invisible to the result:
// Sum(a, b) equals Sum(ab) for every split point, so callers can hash
// fields that are not adjacent in memory without copying them into a
// scratch buffer first.
func Sum(segments ...[]byte) uint32 {
	var value uint32
	for _, segment := range segments {
		value = crc32.Update(value, crc32.IEEETable, segment)
	}
	return value
}
