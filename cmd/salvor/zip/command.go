// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package zip implements the "salvor zip" CLI subcommands for
// recovering tiny archive entries from central directory metadata.
//
// Nothing here decompresses archive content. The central directory
// already stores each entry's name, uncompressed size, and CRC-32;
// for an entry of a few bytes that checksum pins down the content
// exactly, and enumeration finds it.
package zip

import (
	"github.com/salvor-project/salvor/cmd/salvor/cli"
)

// Command returns the top-level "zip" command with all subcommands.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "zip",
		Summary: "Recover tiny archive entries from CRC metadata",
		Description: `Recover the content of small ZIP entries without extracting.

The central directory records a CRC-32 for every entry. When the entry
is only a few bytes, enumerating all candidate strings of the right
length and comparing checksums recovers the content, even when the
archive is encrypted, since the directory metadata is not.`,
		Subcommands: []*cli.Command{
			recoverCommand(),
			listCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Recover all four-byte entries over lowercase letters",
				Command:     "salvor zip recover --in challenge.zip --size 4 --preset lower",
			},
			{
				Description: "Use an explicit candidate alphabet",
				Command:     "salvor zip recover --in challenge.zip --size 3 --alphabet 0123456789abcdef",
			},
			{
				Description: "Try wordlist candidates instead of enumerating",
				Command:     "salvor zip recover --in challenge.zip --size 5 --wordlist rockyou.txt",
			},
			{
				Description: "Inspect the central directory first",
				Command:     "salvor zip list --in challenge.zip",
			},
		},
	}
}
