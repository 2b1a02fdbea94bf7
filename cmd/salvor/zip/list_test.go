// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package zip

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/salvor-project/salvor/cmd/salvor/cli"
	"github.com/salvor-project/salvor/lib/zipcrack"
)

func TestRunListAllEntries(t *testing.T) {
	t.Setenv("SALVOR_CONFIG", "")
	archive := writeArchive(t, []archiveEntry{
		{name: "demo.txt", content: "flag"},
		{name: "readme.md", content: "hello world"},
	})

	params := &listParams{
		JSONOutput: cli.JSONOutput{OutputJSON: true},
		Input:      archive,
		Size:       -1,
	}
	output, err := captureStdout(t, func() error { return runList(params) })
	if err != nil {
		t.Fatalf("runList: %v", err)
	}

	var entries []zipcrack.Entry
	if err := json.Unmarshal(output, &entries); err != nil {
		t.Fatalf("parsing entries: %v\n%s", err, output)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Name != "demo.txt" || entries[1].Name != "readme.md" {
		t.Errorf("names = %q, %q; want demo.txt, readme.md", entries[0].Name, entries[1].Name)
	}
}

func TestRunListSizeFilter(t *testing.T) {
	t.Setenv("SALVOR_CONFIG", "")
	archive := writeArchive(t, []archiveEntry{
		{name: "demo.txt", content: "flag"},
		{name: "empty.txt", content: ""},
		{name: "readme.md", content: "hello world"},
	})

	tests := []struct {
		name string
		size int64
		want []string
	}{
		{"four byte entries", 4, []string{"demo.txt"}},
		{"empty entries", 0, []string{"empty.txt"}},
		{"no matches", 7, []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			params := &listParams{
				JSONOutput: cli.JSONOutput{OutputJSON: true},
				Input:      archive,
				Size:       test.size,
			}
			output, err := captureStdout(t, func() error { return runList(params) })
			if err != nil {
				t.Fatalf("runList: %v", err)
			}

			var entries []zipcrack.Entry
			if err := json.Unmarshal(output, &entries); err != nil {
				t.Fatalf("parsing entries: %v\n%s", err, output)
			}
			if len(entries) != len(test.want) {
				t.Fatalf("got %d entries, want %d", len(entries), len(test.want))
			}
			for i, name := range test.want {
				if entries[i].Name != name {
					t.Errorf("entry %d = %q, want %q", i, entries[i].Name, name)
				}
			}
		})
	}
}

func TestRunListRequiresInput(t *testing.T) {
	err := runList(&listParams{Size: -1})
	if err == nil || !strings.Contains(err.Error(), "--in is required") {
		t.Fatalf("runList error = %v, want --in requirement", err)
	}
}
