// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package evidence ties recovery output to the exact input bytes it
// was derived from. Every report embeds BLAKE3 digests of the evidence
// file that was read and of any repaired file that was written, so a
// recovery can be re-verified against the same bytes later.
package evidence

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// HashFile computes the BLAKE3 digest of the file at path. The file is
// streamed through the hash in chunks (via io.Copy) so memory usage
// stays constant regardless of evidence size.
func HashFile(path string) ([32]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return [32]byte{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return [32]byte{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// HashBytes computes the BLAKE3 digest of an in-memory buffer. Used
// for patched buffers before they are persisted.
func HashBytes(data []byte) [32]byte {
	return blake3.Sum256(data)
}

// FormatDigest returns the hex-encoded string form of a digest. This
// is the canonical format used in reports and log output.
func FormatDigest(digest [32]byte) string {
	return hex.EncodeToString(digest[:])
}

// ParseDigest parses a hex-encoded digest string into a 32-byte array.
// Returns an error if the string is not a valid 64-character hex
// encoding of 32 bytes.
func ParseDigest(hexString string) ([32]byte, error) {
	var digest [32]byte
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}
