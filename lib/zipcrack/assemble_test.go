// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package zipcrack

import "testing"

func TestAssembleOrdersByLabel(t *testing.T) {
	later := &Bucket{Label: "b.txt", Checksum: 2}
	later.append([]byte("yy"))
	earlier := &Bucket{Label: "a.txt", Checksum: 1}
	earlier.append([]byte("xx"))
	earlier.append([]byte("zz"))

	index := testIndex(2, later, earlier)

	// a.txt's matches come first in append order, then b.txt's.
	if got := Assemble(index); got != "xxzzyy" {
		t.Fatalf("Assemble = %q, want xxzzyy", got)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	bucket := &Bucket{Label: "demo.txt", Checksum: 7}
	bucket.append([]byte("flag"))
	index := testIndex(4, bucket)

	first := Assemble(index)
	second := Assemble(index)
	if first != second || first != "flag" {
		t.Fatalf("Assemble = %q then %q, want flag both times", first, second)
	}
}

func TestAssembleSkipsEmptyBuckets(t *testing.T) {
	full := &Bucket{Label: "z.txt", Checksum: 2}
	full.append([]byte("ok"))
	empty := &Bucket{Label: "a.txt", Checksum: 1}

	index := testIndex(2, full, empty)
	if got := Assemble(index); got != "ok" {
		t.Fatalf("Assemble = %q, want ok", got)
	}
}

func TestBucketsSortedByLabel(t *testing.T) {
	index := testIndex(4,
		&Bucket{Label: "c.bin", Checksum: 3},
		&Bucket{Label: "a.bin", Checksum: 1},
		&Bucket{Label: "b.bin", Checksum: 2},
	)

	buckets := index.Buckets()
	want := []string{"a.bin", "b.bin", "c.bin"}
	for i, bucket := range buckets {
		if bucket.Label != want[i] {
			t.Fatalf("bucket %d label = %q, want %q", i, bucket.Label, want[i])
		}
	}
}
