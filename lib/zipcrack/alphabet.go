// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package zipcrack

import (
	"errors"
	"fmt"
	"slices"
)

// classicSet is the byte set CTF text payloads are usually drawn from:
// digits, letters, punctuation, then space and the whitespace controls.
const classicSet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~ \t\n\r\x0b\x0c"

var presets = map[string]string{
	"classic": classicSet,
	"lower":   "abcdefghijklmnopqrstuvwxyz",
	"alnum":   "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"digits":  "0123456789",
	"hex":     "0123456789abcdef",
}

// ErrDuplicateCharacter reports an alphabet with a repeated byte.
var ErrDuplicateCharacter = errors.New("zipcrack: duplicate alphabet character")

// Alphabet is an ordered set of candidate bytes. Order matters: the
// search enumerates candidates in the order the alphabet induces, and
// every byte must occur exactly once.
type Alphabet []byte

// ParseAlphabet builds an Alphabet from set, rejecting repeated bytes.
func ParseAlphabet(set string) (Alphabet, error) {
	var seen [256]bool
	alphabet := make(Alphabet, 0, len(set))
	for _, char := range []byte(set) {
		if seen[char] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCharacter, char)
		}
		seen[char] = true
		alphabet = append(alphabet, char)
	}
	return alphabet, nil
}

// Preset returns a named alphabet. The default "classic" set covers
// printable ASCII plus blanks; "lower", "alnum", "digits", and "hex"
// narrow the space for faster runs.
func Preset(name string) (Alphabet, bool) {
	set, ok := presets[name]
	if !ok {
		return nil, false
	}
	return Alphabet(set), true
}

// PresetNames lists the available preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (alphabet Alphabet) String() string {
	return string(alphabet)
}
