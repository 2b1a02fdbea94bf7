// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition (counted as 2 edits)
		{"kitten", "sitting", 3},
		{"recover", "rcover", 1},
		{"repair", "repiar", 2},
		{"scan", "scn", 1},
		{"version", "vrsion", 1},
		{"alphabet", "alhpabet", 2},
	}

	for _, test := range tests {
		t.Run(test.a+"→"+test.b, func(t *testing.T) {
			got := levenshtein(test.a, test.b)
			if got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestLevenshtein_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"abc", "abd"},
		{"hello", "helo"},
		{"repair", "repiar"},
	}

	for _, pair := range pairs {
		forward := levenshtein(pair[0], pair[1])
		reverse := levenshtein(pair[1], pair[0])
		if forward != reverse {
			t.Errorf("levenshtein(%q, %q) = %d, but reverse = %d",
				pair[0], pair[1], forward, reverse)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "recover"},
		{Name: "repair"},
		{Name: "scan"},
		{Name: "list"},
		{Name: "version"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"rcover", "recover"},    // missing letter
		{"recoverr", "recover"},  // extra letter
		{"repiar", "repair"},     // transposed letters
		{"scn", "scan"},          // missing letter
		{"vrsion", "version"},    // missing letter
		{"zzzzzzzzz", ""},        // nothing close
		{"r", ""},                // too short to match well
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got := suggestCommand(test.input, commands)
			if got != test.want {
				t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestSuggestFlag(t *testing.T) {
	makeFlagSet := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flagSet.String("alphabet", "", "")
		flagSet.String("preset", "", "")
		flagSet.Uint64("size", 0, "")
		flagSet.String("wordlist", "", "")
		flagSet.Bool("json", false, "")
		return flagSet
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "close typo with double dash",
			args: []string{"--alhpabet"},
			want: "--alphabet",
		},
		{
			name: "close typo with single dash",
			args: []string{"-alhpabet"},
			want: "--alphabet",
		},
		{
			name: "preset typo",
			args: []string{"--perset"},
			want: "--preset",
		},
		{
			name: "size typo",
			args: []string{"--sze"},
			want: "--size",
		},
		{
			name: "nothing close",
			args: []string{"--zzzzzzzzz"},
			want: "",
		},
		{
			name: "no flags",
			args: []string{"positional"},
			want: "",
		},
		{
			name: "flag with equals",
			args: []string{"--wordilst=rockyou.txt"},
			want: "--wordlist",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := suggestFlag(test.args, makeFlagSet())
			if got != test.want {
				t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
			}
		})
	}
}
