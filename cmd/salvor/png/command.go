// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package png implements the "salvor png" CLI subcommands for
// repairing and auditing PNG chunk checksums.
//
// The repair subcommand targets the classic CTF tamper: a header whose
// stored CRC no longer matches because one dimension field was edited.
// The scan subcommand audits every chunk in the file so the operator
// can see where a corruption landed before deciding how to attack it.
package png

import (
	"github.com/salvor-project/salvor/cmd/salvor/cli"
)

// Command returns the top-level "png" command with all subcommands.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "png",
		Summary: "Repair and audit PNG chunk checksums",
		Description: `Work on PNG files whose chunk checksums no longer verify.

The IHDR chunk commits to the image dimensions through a stored CRC-32.
When a challenge author edits a dimension, the stored CRC becomes the
only witness of the original value, and a brute force over the 32-bit
field space recovers it.`,
		Subcommands: []*cli.Command{
			repairCommand(),
			scanCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Restore a tampered dimension and write a fixed copy",
				Command:     "salvor png repair --in flag.png",
			},
			{
				Description: "Cap the search and emit a JSON report",
				Command:     "salvor png repair --in flag.png --max-attempts 100000000 --json",
			},
			{
				Description: "Audit all chunk checksums",
				Command:     "salvor png scan --in flag.png",
			},
		},
	}
}
