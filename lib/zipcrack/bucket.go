// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package zipcrack

import (
	"slices"
	"sync"
)

// Bucket groups archive entries that share a checksum at the target
// size. Label is the name of the first entry seen with that checksum;
// matches collects every candidate whose checksum landed here, in the
// order they were appended.
type Bucket struct {
	Label    string
	Checksum uint32

	mu      sync.Mutex
	matches []string
}

// append records a candidate. The bytes are copied; workers reuse
// their prefix buffers. Each bucket has its own lock, so workers
// hitting different buckets never contend.
func (bucket *Bucket) append(candidate []byte) {
	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	bucket.matches = append(bucket.matches, string(candidate))
}

// Matches returns the candidates appended so far, in append order.
func (bucket *Bucket) Matches() []string {
	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	return slices.Clone(bucket.matches)
}
