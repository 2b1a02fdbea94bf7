// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package zipcrack

import "strings"

// Assemble produces the recovered text: buckets in label order, each
// bucket's matches concatenated in the order they were appended.
// Buckets with no matches contribute nothing, so an empty string is a
// valid outcome, not a failure.
func Assemble(index *Index) string {
	var builder strings.Builder
	for _, bucket := range index.Buckets() {
		for _, match := range bucket.Matches() {
			builder.WriteString(match)
		}
	}
	return builder.String()
}
